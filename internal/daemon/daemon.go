package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"algoviz/internal/config"
	"algoviz/internal/logging"
)

// LockFileName is created in the data directory while the daemon runs.
const LockFileName = "algoviz.lock"

const defaultPruneInterval = time.Hour

// Server is the HTTP surface started by the daemon.
type Server interface {
	Start(ctx context.Context) error
	Stop()
	Addr() string
}

// Pruner removes expired cache entries.
type Pruner interface {
	Prune(ctx context.Context) (int64, error)
}

// Option customizes a Daemon.
type Option func(*Daemon)

// WithPruner enables periodic cache pruning.
func WithPruner(p Pruner, interval time.Duration) Option {
	return func(d *Daemon) {
		d.pruner = p
		if interval > 0 {
			d.pruneInterval = interval
		}
	}
}

// Daemon coordinates the API server and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	server Server

	pruner        Pruner
	pruneInterval time.Duration

	lockPath string
	lock     *flock.Flock

	mu      sync.Mutex
	running atomic.Bool
	started time.Time
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	Address      string
	LockFilePath string
	Uptime       time.Duration
}

// New constructs a daemon around an unstarted server.
func New(cfg *config.Config, server Server, logger *slog.Logger, opts ...Option) (*Daemon, error) {
	if cfg == nil || server == nil {
		return nil, errors.New("daemon requires config and server")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := filepath.Join(cfg.Paths.DataDir, LockFileName)
	d := &Daemon{
		cfg:           cfg,
		logger:        logging.NewComponentLogger(logger, "daemon"),
		server:        server,
		pruneInterval: defaultPruneInterval,
		lockPath:      lockPath,
		lock:          flock.New(lockPath),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Start acquires the daemon lock and starts serving.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running.Load() {
		return errors.New("daemon already running")
	}
	if err := os.MkdirAll(filepath.Dir(d.lockPath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another algoviz server is already using %s", filepath.Dir(d.lockPath))
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.server.Start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return fmt.Errorf("start api server: %w", err)
	}
	d.cancel = cancel
	d.started = time.Now()
	d.running.Store(true)

	if d.pruner != nil {
		d.wg.Add(1)
		go d.pruneLoop(runCtx)
	}
	d.logger.Info("algoviz daemon started",
		logging.String("lock", d.lockPath),
		logging.String("address", d.server.Addr()),
	)
	return nil
}

// Stop stops serving and releases the daemon lock.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.server.Stop()
	d.wg.Wait()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("algoviz daemon stopped")
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		LockFilePath: d.lockPath,
	}
	if status.Running {
		d.mu.Lock()
		status.Uptime = time.Since(d.started)
		d.mu.Unlock()
		status.Address = d.server.Addr()
	}
	return status
}

func (d *Daemon) pruneLoop(ctx context.Context) {
	defer d.wg.Done()
	d.prune(ctx)
	ticker := time.NewTicker(d.pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.prune(ctx)
		}
	}
}

func (d *Daemon) prune(ctx context.Context) {
	removed, err := d.pruner.Prune(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logging.WarnWithContext(d.logger, "cache prune failed", "cache_prune",
			logging.Error(err),
			logging.String(logging.FieldImpact, "expired responses remain until the next run"),
		)
		return
	}
	if removed > 0 {
		d.logger.Info("cache pruned", logging.Int("removed", int(removed)))
	}
}

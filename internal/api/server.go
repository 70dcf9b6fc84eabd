package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"algoviz/internal/config"
	"algoviz/internal/logging"
	"algoviz/internal/services"
	"algoviz/internal/visualizer"
	"algoviz/internal/viz"
)

// maxBodyBytes bounds request bodies; a 100-line program fits many times over.
const maxBodyBytes = 1 << 20

// Visualizer is the pipeline surface the server needs.
type Visualizer interface {
	Generate(ctx context.Context, req visualizer.Request) (viz.Document, error)
	Plan(req visualizer.Request) (visualizer.Plan, error)
	HealthCheck(ctx context.Context) error
	Model() string
}

// Options configures the HTTP server.
type Options struct {
	Bind           string
	APIToken       string
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// OptionsFromConfig extracts server options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{}
	}
	return Options{
		Bind:           strings.TrimSpace(cfg.Server.Bind),
		APIToken:       cfg.Server.APIToken,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout(),
	}
}

// Server serves the visualization API.
type Server struct {
	opts   Options
	svc    Visualizer
	logger *slog.Logger

	listener net.Listener
	server   *http.Server
}

// NewServer wires routes and middleware around svc.
func NewServer(svc Visualizer, opts Options, logger *slog.Logger) (*Server, error) {
	if svc == nil {
		return nil, errors.New("api server requires a visualizer")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		opts:   opts,
		svc:    svc,
		logger: logging.NewComponentLogger(logger, "api-server"),
	}
	writeTimeout := 30 * time.Second
	if opts.RequestTimeout > 0 {
		writeTimeout = opts.RequestTimeout + 10*time.Second
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/visualize", s.handleVisualize)
	mux.HandleFunc("POST /api/classify", s.handleClassify)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	// Method-less patterns catch the remaining verbs so the 405 body stays JSON.
	mux.HandleFunc("/api/visualize", s.methodNotAllowed(http.MethodPost))
	mux.HandleFunc("/api/classify", s.methodNotAllowed(http.MethodPost))
	mux.HandleFunc("/api/health", s.methodNotAllowed(http.MethodGet, http.MethodHead))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusNotFound, "no route for "+r.URL.Path)
	})

	var h http.Handler = authMiddleware(s.opts.APIToken, mux)
	h = corsMiddleware(s.opts.AllowedOrigins, h)
	h = s.loggingMiddleware(h)
	h = requestIDMiddleware(h)
	return h
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	if s.opts.Bind == "" {
		return services.Wrap(services.ErrConfiguration, "api", "listen", "server.bind is empty", nil)
	}
	listener, err := net.Listen("tcp", s.opts.Bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening",
		logging.String("address", listener.Addr().String()),
		logging.String("model", s.svc.Model()),
		logging.Bool("auth", s.opts.APIToken != ""),
	)
	return nil
}

// Addr reports the bound address once Start succeeded.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down, waiting briefly for in-flight requests.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	var req visualizer.Request
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}
	doc, err := s.svc.Generate(ctx, req)
	if err != nil {
		s.writeError(w, r, services.HTTPStatus(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	plan, err := s.svc.Plan(visualizer.Request{Code: req.Code})
	if err != nil {
		s.writeError(w, r, services.HTTPStatus(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, FromPlan(plan))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.HealthCheck(r.Context()); err != nil {
		logging.WarnWithContext(logging.WithContext(r.Context(), s.logger), "health check failed", "health_check",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "verify llm credentials and network access"),
		)
		s.writeError(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Model: s.svc.Model()})
}

func (s *Server) methodNotAllowed(allowed ...string) http.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	id, _ := services.RequestIDFromContext(r.Context())
	s.writeJSON(w, status, ErrorResponse{Error: message, RequestID: id})
}

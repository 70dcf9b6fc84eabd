package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"algoviz/internal/api"
	"algoviz/internal/daemon"
	"algoviz/internal/logging"
	"algoviz/internal/preflight"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bindFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			runCtx := cmd.Context()
			for _, r := range preflight.Failed(preflight.RunAll(runCtx, cfg, nil)) {
				logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
					logging.String("check", r.Name),
					logging.String("detail", r.Detail),
					logging.String(logging.FieldErrorHint, "fix directory permissions or run algoviz health"),
					logging.String(logging.FieldImpact, "responses may not be cached or logged"),
				)
			}

			p, err := newPipeline(runCtx, cfg, logger)
			if err != nil {
				return err
			}
			defer p.Close()

			opts := api.OptionsFromConfig(cfg)
			if bindFlag != "" {
				opts.Bind = bindFlag
			}
			server, err := api.NewServer(p.service, opts, logger)
			if err != nil {
				return err
			}

			var daemonOpts []daemon.Option
			if p.cache != nil {
				daemonOpts = append(daemonOpts, daemon.WithPruner(p.cache, 0))
			}
			d, err := daemon.New(cfg, server, logger, daemonOpts...)
			if err != nil {
				return fmt.Errorf("create daemon: %w", err)
			}
			if err := d.Start(runCtx); err != nil {
				return err
			}
			defer d.Stop()

			fmt.Fprintf(cmd.OutOrStdout(), "algoviz listening on http://%s (model %s)\n", d.Status().Address, p.service.Model())
			<-runCtx.Done()
			logger.Info("algoviz shutting down", logging.String("address", d.Status().Address))
			return nil
		},
	}

	cmd.Flags().StringVar(&bindFlag, "bind", "", "Override server.bind (host:port)")
	return cmd
}

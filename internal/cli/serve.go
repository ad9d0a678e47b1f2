package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formfield/pkg/metrics"
	"github.com/goliatone/go-formfield/pkg/server"
)

func cmdServe(logger *zerolog.Logger) *cli.Command {
	var storeCfg storeConfig
	var addr string
	var enableMetrics bool
	var sanitize bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars(envPrefix + "ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Expose Prometheus metrics on /metrics",
			Value:       true,
			Sources:     cli.EnvVars(envPrefix + "METRICS"),
			Destination: &enableMetrics,
		},
		&cli.BoolFlag{
			Name:        "sanitize",
			Usage:       "Strip markup from free-text values echoed by /validate",
			Sources:     cli.EnvVars(envPrefix + "SANITIZE"),
			Destination: &sanitize,
		},
	}
	flags = append(flags, storeCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := storeCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "failed to load form declarations")
			}

			opts := []server.Option{
				server.WithLogger(*logger),
				server.WithValidator(storeCfg.Validator()),
				server.WithSanitizedValues(sanitize),
			}
			if enableMetrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				collector, err := metrics.NewCollector(reg)
				if err != nil {
					return goerr.Wrap(err, "failed to register metrics")
				}
				opts = append(opts, server.WithMetrics(collector, reg))
			}

			handler, err := server.New(store, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create server")
			}

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", addr).Strs("forms", store.IDs()).Msg("starting server")
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return goerr.Wrap(err, "server failed")
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server")
			}
			return nil
		},
	}
}

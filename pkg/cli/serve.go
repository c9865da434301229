package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grcengine/pkg/cli/config"
	httpctrl "github.com/secmon-lab/grcengine/pkg/controller/http"
	"github.com/secmon-lab/grcengine/pkg/usecase"
	"github.com/secmon-lab/grcengine/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var batchLimit int
	var requestTimeout time.Duration
	var libCfg config.Library
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("GRCENGINE_ADDR"),
			Destination: &addr,
		},
		&cli.IntFlag{
			Name:        "batch-limit",
			Usage:       "Maximum number of answer sets scored concurrently in a batch",
			Value:       8,
			Sources:     cli.EnvVars("GRCENGINE_BATCH_LIMIT"),
			Destination: &batchLimit,
		},
		&cli.DurationFlag{
			Name:        "request-timeout",
			Usage:       "Per request timeout (0 disables it)",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("GRCENGINE_REQUEST_TIMEOUT"),
			Destination: &requestTimeout,
		},
	}

	// Add shared config flags
	flags = append(flags, libCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			library, err := libCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load library")
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo, library, usecase.WithBatchLimit(batchLimit))

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpctrl.WithTimeout(requestTimeout)),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal, server error or cancellation
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			case <-ctx.Done():
				logging.Default().Info("Context cancelled, shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}

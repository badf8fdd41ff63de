package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/conform"
	"github.com/aretw0/conform/internal/presentation/tui"
	httpAdapter "github.com/aretw0/conform/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP validation API",
	Long: `Serves the loaded collections over a JSON API with an OpenAPI document,
Prometheus metrics and a server-sent event stream of dataset reloads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(ctx, cmd)
		if err != nil {
			return err
		}

		port := e.cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		watch, _ := cmd.Flags().GetBool("watch")

		server := httpAdapter.NewServer(e.svc,
			httpAdapter.WithLogger(e.logger),
			httpAdapter.WithRateLimit(e.cfg.Server.RateLimit.RPS, e.cfg.Server.RateLimit.Burst),
			httpAdapter.WithMetrics(e.metrics.Handler()),
		)

		if watch {
			events, err := e.svc.Watch(ctx)
			if err != nil {
				return fmt.Errorf("failed to watch dataset: %w", err)
			}
			go func() {
				for source := range events {
					server.Streams.Broadcast(source)
				}
			}()
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           server.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			tui.PrintBanner(os.Stderr, conform.Version)
			e.logger.Info("starting conform server", "address", srv.Addr, "dataset", e.cfg.Dataset.Path, "watch", watch)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			e.logger.Info("start shutdown")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				e.logger.Error("graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			e.logger.Info("conform server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (defaults to server.port)")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload the dataset when it changes")
}

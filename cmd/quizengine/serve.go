package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teachtool/quizengine/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if a.cfg.ReseedOnStart {
			if err := a.engine.ReseedCanonicalBank(ctx); err != nil {
				return err
			}
		}

		handler := api.NewHandler(a.engine, a.logger, a.cfg.UploadQuizCount)
		server := &http.Server{
			Addr:              a.cfg.ServerAddress,
			Handler:           api.NewRouter(handler, a.logger, a.cfg.CORSOrigins),
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan

			ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
			defer cancel()

			a.logger.Info("shutting down server")
			if err := server.Shutdown(ctx); err != nil {
				a.logger.Error("server forced to shutdown", "error", err)
			}
		}()

		a.logger.Info("starting server", "address", a.cfg.ServerAddress, "driver", a.cfg.DBDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("server failed to start", "error", err)
			return err
		}
		<-done
		return nil
	}),
}

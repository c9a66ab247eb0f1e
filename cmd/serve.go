package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = rt.log.Sync() }()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", rt.cfg.Port),
			Handler:           rt.handler.Router(),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      writeTimeout(rt.cfg.OpenAI.Timeout, rt.cfg.Gemini.Timeout, rt.cfg.Ollama.Timeout),
			IdleTimeout:       60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			rt.log.Info("http server listening", zap.String("addr", srv.Addr))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		rt.log.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	},
}

// writeTimeout leaves room for the slowest backend call plus response writing.
func writeTimeout(backendTimeouts ...time.Duration) time.Duration {
	longest := 15 * time.Second
	for _, d := range backendTimeouts {
		longest = max(longest, d)
	}
	return longest + 10*time.Second
}

func init() {
	serveCmd.Flags().IntP("port", "p", 5000, "listen port (env PORT)")
	mustBind("port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

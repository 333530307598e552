package cmd

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

	"github.com/optilearn/schedulease/internal/config"
	"github.com/optilearn/schedulease/internal/fakebackend"
	"github.com/optilearn/schedulease/internal/logging"
)

var devServerCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Serve an in-memory backend for local development",
	Long: "Starts an HTTP server implementing the backend API with seeded data.\n" +
		"Sign in with NUID " + fakebackend.SeedNUID + " and name \"" + fakebackend.SeedName + "\".",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		file, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(config.Options{File: file, Flags: cmd.Flags()})
		if err != nil {
			return err
		}
		logger, err := logging.New(logging.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			File:   cfg.Log.File,
		})
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		backend := fakebackend.New(fakebackend.WithLogger(logger.Named("devserver")))
		srv := &http.Server{
			Addr:         addr,
			Handler:      backend.Router(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			logger.Info("devserver listening", zap.String("addr", addr))
			errc <- srv.ListenAndServe()
		}()
		fmt.Fprintf(cmd.OutOrStdout(), "Serving backend on http://%s (Ctrl+C to stop)\n", addr)

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down devserver")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	devServerCmd.Flags().String("addr", "localhost:8000", "Listen address")
}

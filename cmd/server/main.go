package main

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vncsmyrnk/boulder/internal/adapters/handler/http"
	"github.com/vncsmyrnk/boulder/internal/app"
	"github.com/vncsmyrnk/boulder/internal/config"
	"github.com/vncsmyrnk/boulder/internal/logging"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "boulder-server",
		Short:         "Weekly climbing poll API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("boulder-server version %s\n", version)
		},
	})

	return cmd
}

func serve() error {
	cfg, envErr := config.Load()
	if err := logging.BootstrapLogger(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	if envErr != nil {
		logging.Log.Debug("no .env file found")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	logging.Log.WithField("store", store.Type).Info("store ready")

	svc, err := app.NewServices(cfg, store)
	if err != nil {
		return err
	}
	if err := app.SeedRoster(ctx, cfg, svc.Roster); err != nil {
		return err
	}

	metrics := http.NewMetrics()
	handler := http.NewHandler(http.RouterConfig{
		Votes:       http.NewVoteHandler(svc.Votes, metrics),
		Roster:      http.NewRosterHandler(svc.Roster),
		Health:      http.NewHealthHandler(store.Type, store.Ping),
		Metrics:     metrics,
		CORSOrigins: cfg.Server.CORSOrigins,
	})
	server := &stdhttp.Server{
		Addr:              "0.0.0.0:" + strconv.Itoa(cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Log.WithField("addr", server.Addr).Info("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logging.Log.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

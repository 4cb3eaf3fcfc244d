package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"querytool/internal/config"
	"querytool/internal/handler"
	"querytool/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:          "querytool",
		Short:        "Browser SQL query tool backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			explicit := cmd.Flags().Changed("env-file")
			cfg, err := config.Load(envFile, explicit, cmd.Flags())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment")
	cmd.Flags().Int("port", config.DefaultHTTPPort, "HTTP listen port (overrides PORT)")
	cmd.Flags().String("log-level", "info", "log level: debug, info, warn or error")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := service.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	h := handler.New(
		service.NewExecutor(db, logger),
		service.NewIntrospector(db, logger),
		logger,
	)

	r := gin.Default()
	h.Register(r)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Joseda-hg/lazyboard/internal/config"
	"github.com/Joseda-hg/lazyboard/internal/db"
	"github.com/Joseda-hg/lazyboard/internal/logger"
	"github.com/Joseda-hg/lazyboard/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local task API backed by sqlite",
	Long: `serve runs a stand-in for the remote task API with the same four routes
(GET/POST /tasks, PUT/DELETE /tasks/{id}), plus /health and /metrics.`,
	RunE: runServe,
}

var (
	serveAddr  string
	serveDB    string
	serveToken string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8080)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "sqlite db path, or :memory:")
	serveCmd.Flags().StringVar(&serveToken, "serve-token", "", "bearer token clients must send")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Serve.Addr = serveAddr
	}
	if flags.Changed("db") {
		cfg.Serve.DBPath = serveDB
	}
	if flags.Changed("serve-token") {
		cfg.Serve.Token = serveToken
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = config.DefaultServeAddr
	}

	if cfg.Serve.DBPath != ":memory:" {
		if err := config.EnsureDir(cfg.Serve.DBPath); err != nil {
			return err
		}
	}
	conn, err := db.Open(cfg.Serve.DBPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	handler := server.New(db.NewStore(conn), server.Options{
		Token:  cfg.Serve.Token,
		Logger: logger.L(),
	}).Handler()
	httpServer := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_listen", zap.String("addr", cfg.Serve.Addr), zap.String("db", cfg.Serve.DBPath))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_error", err)
			return err
		}
		return nil
	case <-cmd.Context().Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("server_shutdown")
	return httpServer.Shutdown(ctx)
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chronicdata/brfss-dash/internal/dataset"
	"github.com/chronicdata/brfss-dash/internal/server"
)

var (
	servePort int
	serveData string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over a cleaned dataset",
	Long: `Loads the cleaned observation file once and serves the dashboard on a
local address. The dataset is immutable for the life of the process; restart
to pick up a re-cleaned file.

Exits non-zero if the cleaned file cannot be loaded.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		path := serveData
		if path == "" {
			path = cfg.Data.Path
		}

		// Loading state: single read at startup, no hot reload.
		zap.L().Info("loading cleaned dataset", zap.String("path", path))
		table, err := dataset.Load(path)
		if err != nil {
			zap.L().Error("dashboard unavailable: cleaned dataset failed to load",
				zap.String("path", path), zap.Error(err))
			return eris.Wrap(err, "serve: load dataset")
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, port),
			Handler: server.New(table).Router(),
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			zap.L().Info("dashboard ready",
				zap.String("addr", "http://"+srv.Addr),
				zap.Int("rows", table.Len()),
			)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "serve: listen")
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveData, "data", "", "cleaned file path (default from config)")
	rootCmd.AddCommand(serveCmd)
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joestump/wisaw-links/internal/config"
	"github.com/joestump/wisaw-links/internal/db"
	"github.com/joestump/wisaw-links/internal/deeplink"
	"github.com/joestump/wisaw-links/internal/friendship"
	"github.com/joestump/wisaw-links/internal/handler"
	"github.com/joestump/wisaw-links/internal/logger"
	"github.com/joestump/wisaw-links/internal/store"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			router := handler.NewRouter(handler.Deps{
				Parser:      parserFor(cfg),
				Links:       deeplink.Links{Scheme: cfg.Links.Scheme, Host: cfg.Links.Host},
				Codec:       friendship.NewCodec(cfg.Links.Scheme),
				Identities:  store.NewIdentityStore(database),
				FriendNames: store.NewFriendNameStore(database),
				Logger:      log,
			})

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening", zap.String("addr", cfg.HTTP.Addr), zap.String("driver", cfg.DB.Driver))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

// parserFor accepts the configured scheme and universal-link hosts.
func parserFor(cfg *config.Config) deeplink.Parser {
	return deeplink.Parser{
		Schemes: []string{cfg.Links.Scheme},
		Hosts:   cfg.Links.AllowedHosts,
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ecotech_server/internal/config"
	"ecotech_server/internal/dao/repository"
	"ecotech_server/internal/handler"
	"ecotech_server/internal/https_server"
	"ecotech_server/internal/service"
	"ecotech_server/internal/session"
	"ecotech_server/internal/storage"
	"ecotech_server/pkg/constants"
	"ecotech_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	warnInsecureDefaults(cfg)

	repos := repository.NewRepositories(db)
	resumes, err := storage.New(ctx, &cfg.StorageConfig)
	if err != nil {
		return err
	}
	svc := service.NewServices(repos, resumes)

	if _, err := svc.Auth.EnsureDefaultAdmin(ctx, cfg.AdminConfig); err != nil {
		return err
	}

	store, closeStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions := session.NewManager(store, jwt.NewSigner(cfg.SessionConfig.Secret), cfg.RememberDays, cfg.SessionConfig.Secure)
	handlers := handler.NewHandlers(cfg.AppName, svc, sessions)
	if err := handler.InitTrans("en"); err != nil {
		return err
	}

	engine, err := https_server.NewEngine(cfg, handlers, sessions, svc.Auth)
	if err != nil {
		return err
	}
	srv := https_server.NewServer(cfg, engine)

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server listening", zap.String("addr", srv.Addr), zap.String("mode", cfg.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			zap.L().Error("server stopped", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	zap.L().Info("server stopped")
	return nil
}

// newSessionStore picks the store named by sessionConfig.store.
func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	if cfg.SessionConfig.Store != "redis" {
		return session.NewMemoryStore(), func() {}, nil
	}
	client, err := session.NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	zap.L().Info("redis session store connected", zap.String("addr", cfg.RedisAddr()))
	return session.NewRedisStore(client, constants.SESSION_KEY_PREFIX), func() { _ = client.Close() }, nil
}

func warnInsecureDefaults(cfg *config.Config) {
	if cfg.SessionConfig.Secret == config.DefaultSecret {
		zap.L().Warn("using the built-in development secret; set SECRET_KEY in production")
	}
	if cfg.AdminConfig.Password == "admin123" {
		zap.L().Warn("default admin password is configured; change it with `ecotech_server admin set-password`")
	}
}

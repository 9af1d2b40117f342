package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campaign/backend/internal/auth"
	"campaign/backend/internal/config"
	"campaign/backend/internal/database"
	"campaign/backend/internal/handler"
	"campaign/backend/internal/hub"
	"campaign/backend/internal/logger"
	"campaign/backend/internal/password"
	"campaign/backend/internal/repository"
	"campaign/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	// Swagger imports
	_ "campaign/backend/docs" // This is important for swag to find the generated docs
)

const shutdownGrace = 5 * time.Second

// @title           Campaign Registration API
// @version         1.0
// @description     Tournament registration form and admin dashboard API.
// @host            localhost:3000
// @BasePath        /api
// @securityDefinitions.apiKey CookieAuth
// @in cookie
// @name token
func main() {
	cfg, found, err := config.Load(".")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	l, err := logger.New(logger.Config{Level: cfg.LogLevel, Dev: !cfg.IsProduction(), File: cfg.LogFile})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = l.Sync() }()

	if !found {
		l.Info("no .env file found, reading configuration from the environment")
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		l.Warn("JWT_SECRET is not set, using the development default")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, l); err != nil {
		l.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, l *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The store connection is opened lazily on first use.
	store := database.New(database.Options{
		DSN:             cfg.DatabaseURL,
		AutoMigrate:     cfg.AutoMigrate,
		InstallTriggers: cfg.RealtimeListen,
		Logger:          l.Named("database"),
	})
	defer func() {
		if err := store.Close(); err != nil {
			l.Warn("failed to close database", zap.Error(err))
		}
	}()

	sessions, err := jwt.New(cfg.JWTSecret, jwt.WithTTL(cfg.SessionTTL))
	if err != nil {
		return err
	}
	hasher, err := password.New(cfg.PasswordHash)
	if err != nil {
		return err
	}
	changes := hub.NewHub()

	h := handler.New(handler.Deps{
		Users:         repository.NewUserRepository(store),
		Teams:         repository.NewTeamRepository(store),
		Registrations: repository.NewRegistrationRepository(store),
		Sessions:      sessions,
		Hasher:        hasher,
		Hub:           changes,
		Cookie: auth.Cookie{
			Name:   cfg.CookieName,
			Secure: cfg.IsProduction(),
			TTL:    cfg.SessionTTL,
		},
		TeamPresets: cfg.Presets(),
		Logger:      l.Named("http"),
	})
	router := handler.NewRouter(h, handler.RouterOptions{Swagger: !cfg.IsProduction()})

	if cfg.RealtimeListen {
		go listen(ctx, cfg, store, changes, l.Named("listener"))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// event streams end when the process is asked to stop
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info("server is running", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if !cfg.IsProduction() {
			l.Info("swagger UI is available", zap.String("url", "http://localhost:"+cfg.Port+"/swagger/index.html"))
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	l.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// listen opens the store once so the triggers exist, then relays
// notifications until ctx is done.
func listen(ctx context.Context, cfg *config.Config, store *database.Handle, changes *hub.Hub, l *zap.Logger) {
	if _, err := store.DB(ctx); err != nil {
		l.Error("realtime listener disabled: store unavailable", zap.Error(err))
		return
	}
	listener := hub.NewListener(changes, cfg.DatabaseURL, database.ChangeChannel, database.WatchedTables, l)
	if err := listener.Run(ctx); err != nil {
		l.Error("realtime listener stopped", zap.Error(err))
	}
}

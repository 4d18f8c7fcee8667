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

	"github.com/catapp/backend/internal/config"
	"github.com/catapp/backend/internal/db"
	"github.com/catapp/backend/internal/handler"
	"github.com/catapp/backend/internal/logging"
	"github.com/catapp/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// @title catapp API
// @version 1.0
// @description Household and cattery registry with expiring token authentication.
// @BasePath /
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Type "Token" followed by a space and the API token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	log := logging.New(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting application", "env", cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("service_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	log.Info("service_stopped")
}

func run(cfg config.Config, log *slog.Logger) error {
	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	pool, err := db.NewPostgresPool(dbCtx, cfg.Postgres)
	dbCancel()
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info("postgres_connected")

	store := db.New(pool)
	if err := store.Migrate(rootCtx); err != nil {
		return err
	}

	authService, err := service.NewAuthService(store, cfg.Auth)
	if err != nil {
		return err
	}
	if err := authService.EnsureAdmin(logging.Into(rootCtx, log), cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return err
	}

	if cfg.Env == logging.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		handler.RequestLogger(log),
		handler.CORSMiddleware(cfg.HTTP.AllowedOrigins, cfg.HTTP.AllowCredential),
	)
	router.NoRoute(handler.NotFound)
	handler.RegisterRoutes(router, handler.Services{
		Auth:   authService,
		Homes:  service.NewHomeService(store),
		Humans: service.NewHumanService(store),
		Breeds: service.NewBreedService(store),
		Cats:   service.NewCatService(store),
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		log.Info("http_listen_start", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

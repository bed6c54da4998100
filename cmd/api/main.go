package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/shop-service/internal/auth"
	"github.com/Dan9191/shop-service/internal/config"
	"github.com/Dan9191/shop-service/internal/docs"
	"github.com/Dan9191/shop-service/internal/handler"
	"github.com/Dan9191/shop-service/internal/middleware"
	"github.com/Dan9191/shop-service/internal/repository"
	"github.com/Dan9191/shop-service/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment")
	}

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	// Initialize database
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if err := repository.Migrate(ctx, db, logger); err != nil {
		return err
	}

	// Initialize layers
	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, hasher, tokens, logger)
	h := handler.NewHandler(svc, logger)

	apiDocs, err := docs.Load()
	if err != nil {
		return err
	}

	// Setup router
	r := mux.NewRouter()
	apiDocs.Register(r)
	h.Routes(r, middleware.AuthMiddleware(tokens, logger))

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      middleware.RequestLogger(logger)(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

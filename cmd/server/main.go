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

	"ducksapi/backend/internal/config"
	"ducksapi/backend/internal/domain/store"
	"ducksapi/backend/internal/httpserver"
	"ducksapi/backend/internal/infrastructure/postgres"
	"ducksapi/backend/internal/infrastructure/token"
	"ducksapi/backend/internal/logging"
	authusecase "ducksapi/backend/internal/usecase/auth"
	duckusecase "ducksapi/backend/internal/usecase/duck"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal(logging.New(logging.Config{AppName: "ducks-api"}), "failed to load config", err)
	}

	logger := logging.New(logging.Config{
		AppName: "ducks-api",
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
	slog.SetDefault(logger)

	rootCtx := context.Background()
	db, err := postgres.New(rootCtx, cfg.DatabaseURL)
	if err != nil {
		fatal(logger, "failed to connect to database", err)
	}
	defer db.Close()
	if err := db.Migrate(rootCtx); err != nil {
		fatal(logger, "failed to run database migrations", err)
	}
	if err := testConnection(rootCtx, db); err != nil {
		fatal(logger, "store connection test failed", err)
	}
	logger.Info("connection to the database established")

	tokenManager, err := token.NewJWTManager(cfg.TokenSecret, token.WithIssuer(cfg.TokenIssuer))
	if err != nil {
		fatal(logger, "failed to configure token authority", err)
	}

	authService := authusecase.NewService(db, tokenManager, logger)
	duckService := duckusecase.NewService(db, logger)

	server := httpserver.NewServer(cfg, db, authService, duckService, logger)
	logger.Info("HTTP server listening", "addr", server.Addr())

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				logger.Info("HTTP server closed")
				return
			}
			fatal(logger, "server error", err)
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("graceful shutdown completed")
	}
}

// testConnection opens and releases one session before traffic is accepted.
func testConnection(ctx context.Context, connector store.Connector) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sess, err := connector.Connect(ctx)
	if err != nil {
		return err
	}
	defer sess.Release()
	return sess.Ping(ctx)
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portforyou/internal/api"
	"portforyou/internal/auth"
	"portforyou/internal/config"
	"portforyou/internal/database"
	"portforyou/internal/mail"
	"portforyou/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	// Create a context for initialization.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.ConnectMongoDB(ctx, cfg.MongoURI, logger)
	if err != nil {
		log.Fatalf("Initialization error: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Error("error disconnecting from DB", "error", err)
		}
	}()

	store := database.NewMongoStore(database.GetUserCollection(client, cfg.MongoDB), cfg.MongoTimeout)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Initialization error: %v", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Initialization error: %v", err)
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTAudience, cfg.JWTIssuer, nil)
	authSvc := auth.NewService(store, tokens, mail.New(cfg.ResendAPIKey, cfg.MailFrom, logger), logger,
		auth.WithResetURL(cfg.ResetURL),
	)
	users := user.NewService(store, logger)

	router := api.NewRouter(authSvc, users, logger, api.Options{
		CORSOrigins: cfg.CORSOrigins,
		AccessLog:   os.Stdout,
	})

	srv := &http.Server{
		Handler:      router,
		Addr:         cfg.Addr(),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", "http://localhost"+cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signals for graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}
	logger.Info("server exited gracefully")
}

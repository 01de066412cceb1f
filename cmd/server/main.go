// Package main initializes and starts the docstore HTTP server, setting up
// configuration, logging, credential and session storage, services,
// handlers and graceful shutdown.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/docstore/internal/config"
	"github.com/atinyakov/docstore/internal/db"
	"github.com/atinyakov/docstore/internal/logger"
	"github.com/atinyakov/docstore/internal/repository"
	"github.com/atinyakov/docstore/internal/server/handler/http"
	"github.com/atinyakov/docstore/internal/service"
	"github.com/atinyakov/docstore/internal/session"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Credentials live in PostgreSQL when a DSN is configured, otherwise in
	// the YAML users file.
	var authRepo service.AuthRepository
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer postgresDB.Close()
		authRepo = repository.NewPostgresAuthRepository(postgresDB)
		zapLogger.Info("using postgres credential store")
	} else {
		authRepo = repository.NewFileAuthRepository(options.UsersFile)
		zapLogger.Info("using file credential store", zap.String("path", options.UsersFile))
	}
	if _, err := authRepo.Load(ctx); err != nil {
		zapLogger.Fatal("cannot read credentials", zap.Error(err))
	}

	// Sessions live in Redis when configured, otherwise in memory.
	ttl := options.SessionTTL.Duration
	var sessionStore session.Store
	if options.RedisURL != "" {
		redisStore, err := session.NewRedisStore(options.RedisURL, ttl)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		defer redisStore.Close()
		sessionStore = redisStore
		zapLogger.Info("using redis session store")
	} else {
		memoryStore := session.NewMemoryStore(ttl)
		session.StartExpiredSweeper(ctx, memoryStore, time.Minute, zapLogger)
		sessionStore = memoryStore
		zapLogger.Info("using in-memory session store")
	}

	docRepo, err := repository.NewFileDocumentRepository(options.DataDir)
	if err != nil {
		zapLogger.Fatal("cannot open data dir", zap.Error(err))
	}

	// Initialize business-logic services.
	authService := service.NewAuthService(authRepo, options.BcryptCost, zapLogger)
	docService := service.NewDocumentService(docRepo, zapLogger)

	views, err := http.NewViews(zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot load templates", zap.Error(err))
	}

	// Create HTTP handlers and the router.
	authHandler := &http.AuthHandler{AuthService: authService, Views: views, Log: zapLogger}
	docHandler := &http.DocumentHandler{Documents: docService, Views: views, Log: zapLogger}
	router := http.NewRouter(authHandler, docHandler, http.SessionOptions{
		Store:      sessionStore,
		CookieName: options.SessionCookie,
		TTL:        ttl,
	}, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Address), zap.String("data_dir", options.DataDir))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("shutdown error", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}

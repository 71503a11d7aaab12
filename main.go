package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"visentry-backend/config"
	"visentry-backend/database"
	"visentry-backend/handlers"
	"visentry-backend/logger"
	"visentry-backend/pending"
	"visentry-backend/roster"
	"visentry-backend/settings"
	"visentry-backend/store"
	"visentry-backend/wizard"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database connection
	pool, err := database.Connect(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("Unable to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Session store
	var sessions store.Store = store.NewMemoryStore()
	if cfg.Redis.Enabled {
		rs, err := store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.SessionTTL,
		})
		if err != nil {
			log.Fatal("Unable to connect to redis", zap.Error(err))
		}
		defer rs.Close()
		sessions = rs
		log.Info("Check-in sessions stored in redis", zap.String("addr", cfg.Redis.Addr))
	}

	queue := pending.NewQueue()
	if cfg.HTTP.SeedPending {
		queue = pending.NewQueue(pending.Seed()...)
	}

	router := handlers.NewRouter(handlers.Dependencies{
		Visitors:   database.NewVisitorRepository(pool),
		Sessions:   wizard.NewManager(sessions, log),
		Roster:     roster.NewRegister(),
		Pending:    queue,
		NDA:        settings.NewNDAStore(),
		Logger:     log,
		CORSOrigin: cfg.HTTP.CORSOrigin,
	})

	srv := &http.Server{
		Addr:         cfg.App.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}

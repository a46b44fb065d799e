package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plume/internal/cache"
	"plume/internal/config"
	"plume/internal/database"
	"plume/internal/middleware"
	"plume/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		middleware.Logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	cache.InitRedis(cfg.RedisURL)
	middleware.InitMiddleware(cfg)

	srv := server.NewServer(cfg, db)

	go func() {
		if err := srv.Start(); err != nil {
			middleware.Logger.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	middleware.Logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		middleware.Logger.Error("Forced shutdown", "error", err)
		os.Exit(1)
	}

	middleware.Logger.Info("Server exited")
}

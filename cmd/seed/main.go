package main

import (
	"context"
	"flag"
	"os"

	"plume/internal/config"
	"plume/internal/database"
	"plume/internal/middleware"
	"plume/internal/seed"
)

func main() {
	userCount := flag.Int("users", 20, "number of users to create")
	postsPerUser := flag.Int("posts", 5, "number of posts per user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		middleware.Logger.Error("Refusing to seed a production database")
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		middleware.Logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := seed.Run(context.Background(), db, *userCount, *postsPerUser); err != nil {
		middleware.Logger.Error("Seed failed", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log"

	"github.com/markleedr/campaign-planner-app/config"
	"github.com/markleedr/campaign-planner-app/internal/bootstrap"
	"github.com/markleedr/campaign-planner-app/internal/cache"
	"github.com/markleedr/campaign-planner-app/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	rdb, err := cache.Open(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if rdb == nil {
		log.Println("REDIS_ADDR not set, share cache disabled")
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "ad-proof-backend",
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		DB:             database.Pool,
		Redis:          rdb,
	})

	addr := ":" + cfg.Server.Port
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

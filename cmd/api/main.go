package main

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"usermgmt-api/core"
)

func main() {
	cfg, err := core.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	tokens, err := core.NewTokenIssuer(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("failed to init token issuer: %v", err)
	}

	db, err := core.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	// Metrics are optional; an unset REDIS_URL disables them.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = core.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer redisClient.Close()
	}

	userRepo := core.NewPgUserRepository(db)
	hasher := core.NewBcryptHasher()
	userService := core.NewUserService(userRepo, hasher)
	authService := core.NewAuthService(userRepo, hasher, tokens)
	metrics := core.NewRequestMetrics(redisClient)

	router := core.NewRouter(cfg, authService, userService, tokens, metrics)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("starting api server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

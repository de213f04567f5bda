// Package main is the entry point for the BNPL ledger API server.
package main

import (
	"time"

	"paylater/internal/config"
	"paylater/internal/logger"
	"paylater/internal/repositories"
	"paylater/internal/repositories/cache"
	"paylater/internal/repositories/memory"
	"paylater/internal/routes"
	"paylater/internal/services/credit"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	log, err := logger.New(config.GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	// The ledger store: Postgres in production, in-memory for local
	// single-node runs.
	var store repositories.Store
	switch backend := config.GetEnv("STORE_BACKEND", "postgres"); backend {
	case "memory":
		store = memory.NewStore()
		log.Info("using in-memory ledger store")
	default:
		db, err := repositories.InitDB()
		if err != nil {
			log.Fatal("database init failed", zap.Error(err))
		}
		store = repositories.NewStore(db)
		log.Info("connected to postgres")
	}

	var accountCache repositories.AccountCache = repositories.NoopAccountCache{}
	if config.GetEnv("CACHE_ENABLED", "true") == "true" {
		redisCache := cache.NewAccountCache(cache.NewRedisClient(&cache.RedisConfig{
			Host:     config.GetEnv("REDIS_HOST", "localhost"),
			Port:     config.GetEnv("REDIS_PORT", "6379"),
			Password: config.GetEnv("REDIS_PASSWORD", ""),
			DB:       config.GetIntEnv("REDIS_DB", 0),
		}), 15*time.Minute)
		defer redisCache.Close() //nolint:errcheck
		accountCache = redisCache
		log.Info("account cache enabled")
	}

	policy := credit.PolicyFromEnv()

	app := fiber.New(fiber.Config{
		AppName: "paylater",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	for _, path := range []string{"/api/register", "/api/login"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "too many requests, please try again later",
				})
			},
		}))
	}

	routes.SetupRoutes(app, store, accountCache, policy, log)

	addr := ":" + config.GetEnv("PORT", "3000")
	log.Info("starting server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

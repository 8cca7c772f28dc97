package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/evlane/wedding-planner/internal/config"
	"github.com/evlane/wedding-planner/internal/database"
	"github.com/evlane/wedding-planner/internal/handler"
	"github.com/evlane/wedding-planner/internal/middleware"
	"github.com/evlane/wedding-planner/internal/queue"
	"github.com/evlane/wedding-planner/internal/repository"
	"github.com/evlane/wedding-planner/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: response cache and rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	seating := handler.NewSeatingHandler(repository.NewSeatingRepo(db))
	costs := handler.NewCostHandler(repository.NewCostRepo(db))

	router.RegisterRoutes(e)
	router.RegisterSeating(e, seating, cacheMW)
	router.RegisterCosts(e, costs)

	go func() {
		if err := queue.StartSeatingConsumer(); err != nil {
			log.Printf("seating consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

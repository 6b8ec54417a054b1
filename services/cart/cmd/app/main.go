package main

import (
	"myshop/pkg/cache"
	"myshop/pkg/config"
	"myshop/pkg/database"
	"myshop/pkg/logger"
	cartApp "myshop/services/cart/internal/app"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	cartApp.Run(cfg, log, db, redisClient)
}

package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myshop/pkg/config"
	"myshop/pkg/jwt"
	"myshop/pkg/logger"
	"myshop/pkg/middleware"
	cartHTTP "myshop/services/cart/internal/controller/http"
	"myshop/services/cart/internal/repo/persistent"
	"myshop/services/cart/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "myshop/services/cart/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize Repositories
	cartRepo := persistent.NewCartRepository(redisClient)
	productLookup := persistent.NewProductLookup(db)

	// Initialize UseCase
	cartUseCase := usecase.NewCartUseCase(cartRepo, productLookup, log)

	// Initialize HTTP handlers
	cartHandler := cartHTTP.NewCartHandler(cartUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	// Protected routes - require authentication
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/cart", cartHandler.GetCart)
		protected.DELETE("/cart", cartHandler.ClearCart)
		protected.POST("/cart/items", cartHandler.AddItem)
		protected.PUT("/cart/items/:product_id", cartHandler.UpdateQuantity)
		protected.DELETE("/cart/items/:product_id", cartHandler.RemoveItem)
		protected.GET("/wishlist", cartHandler.GetWishlist)
		protected.POST("/wishlist/toggle", cartHandler.ToggleWishlist)
		protected.DELETE("/wishlist/:product_id", cartHandler.RemoveFromWishlist)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Cart service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down cart service...")

	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Cart service exited")
}

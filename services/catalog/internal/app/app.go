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
	"myshop/pkg/queue"
	"myshop/pkg/s3"
	catalogHTTP "myshop/services/catalog/internal/controller/http"
	"myshop/services/catalog/internal/repo/persistent"
	"myshop/services/catalog/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "myshop/services/catalog/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client, s3Client *s3.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize Repositories
	productRepo := persistent.NewProductRepository(db)
	orderRepo := persistent.NewOrderRepository(db)
	directoryRepo := persistent.NewDirectoryRepository(db)

	// Initialize UseCases
	productUseCase := usecase.NewProductUseCase(productRepo, s3Client, log)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, productRepo, directoryRepo, queueClient, log)

	// Initialize HTTP handlers
	productHandler := catalogHTTP.NewProductHandler(productUseCase, log)
	orderHandler := catalogHTTP.NewOrderHandler(orderUseCase, log)

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
	// Public catalog browsing
	api.GET("/products", productHandler.ListProducts)
	api.GET("/products/:product_id", productHandler.GetProduct)

	// Protected routes - require authentication
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.POST("/orders", orderHandler.CreateOrder)
		protected.GET("/orders", orderHandler.ListMyOrders)
		protected.GET("/orders/:order_id", orderHandler.GetOrder)
	}

	// Admin routes
	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(jwtService), middleware.AdminMiddleware())
	{
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:product_id", productHandler.UpdateProduct)
		admin.DELETE("/products/:product_id", productHandler.ArchiveProduct)
		admin.GET("/admin/orders", orderHandler.ListAllOrders)
		admin.PUT("/admin/orders/:order_id/status", orderHandler.UpdateOrderStatus)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Catalog service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down catalog service...")

	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Catalog service exited")
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"myshop/pkg/cache"
	"myshop/pkg/config"
	"myshop/pkg/database"
	"myshop/pkg/logger"
	"myshop/pkg/models"
	"myshop/pkg/s3"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, s3Client, redisClient, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, s3Client *s3.Client, redisClient *redis.Client, log *logger.Logger) error {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	testUsers := []struct {
		email     string
		firstName string
		lastName  string
		password  string
		role      models.UserRole
	}{
		{"admin@myshop.test", "Site", "Admin", "admin12345", models.RoleAdmin},
		{"alice@test.com", "Alice", "Anderson", "password123", models.RoleUser},
		{"bob@test.com", "Bob", "Brown", "password123", models.RoleUser},
		{"charlie@test.com", "Charlie", "Clark", "password123", models.RoleUser},
		{"diana@test.com", "Diana", "Diaz", "password123", models.RoleUser},
	}

	userIDs := make([]string, 0, len(testUsers))

	for _, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &models.User{
			Email:         userData.email,
			Password:      string(hashedPassword),
			FirstName:     userData.firstName,
			LastName:      userData.lastName,
			Role:          userData.role,
			Status:        models.StatusActive,
			AddressFlat:   "12B",
			AddressStreet: "14 Market Street",
			AddressCity:   "Springfield",
			AddressPin:    "560001",
		}

		if err := user.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate user ID: %w", err)
		}

		var existingUser models.User
		result := db.Where("email = ?", user.Email).First(&existingUser)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Email)
			if existingUser.Role == models.RoleUser {
				userIDs = append(userIDs, existingUser.ID)
			}
			continue
		}

		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Email, err)
			continue
		}

		log.Info("Created user: %s %s (%s)", user.FirstName, user.LastName, user.Email)
		if user.Role == models.RoleUser {
			userIDs = append(userIDs, user.ID)
		}
	}

	catalogItems := []struct {
		title       string
		description string
		price       float64
		discount    float64
		stock       int
	}{
		{"Wireless Headphones", "Over-ear Bluetooth headphones with 30h battery life", 129.99, 10, 40},
		{"Mechanical Keyboard", "Tenkeyless keyboard with hot-swappable switches", 89.50, 0, 25},
		{"Espresso Grinder", "Conical burr grinder with 40 grind settings", 199.00, 15, 12},
		{"Canvas Backpack", "Water-resistant 25L backpack with laptop sleeve", 54.90, 0, 60},
		{"Desk Lamp", "Adjustable LED lamp with three colour temperatures", 32.00, 5, 80},
		{"Steel Water Bottle", "Insulated 750ml bottle, keeps drinks cold for 24h", 24.99, 0, 120},
	}

	productIDs := make([]string, 0, len(catalogItems))

	for i, item := range catalogItems {
		var existingProduct models.Product
		result := db.Where("title = ?", item.title).First(&existingProduct)
		if result.Error == nil {
			log.Info("Product %q already exists, skipping", item.title)
			productIDs = append(productIDs, existingProduct.ID)
			continue
		}

		product, err := createProductWithImage(db, s3Client, httpClient, item.title, item.description, item.price, item.discount, item.stock, i, log)
		if err != nil {
			log.Error("Failed to create product %q: %v", item.title, err)
			continue
		}
		productIDs = append(productIDs, product.ID)
		time.Sleep(200 * time.Millisecond)
	}

	if len(userIDs) > 0 && len(productIDs) > 0 {
		if err := createSampleOrder(db, userIDs[0], productIDs, log); err != nil {
			log.Error("Failed to create sample order: %v", err)
		}
	}

	ctx := context.Background()
	for _, userID := range userIDs {
		if err := pushWelcomeNotification(ctx, redisClient, userID); err != nil {
			log.Error("Failed to push welcome notification for user %s: %v", userID, err)
		}
	}
	log.Info("Pushed welcome notifications for %d users", len(userIDs))

	return nil
}

// seedFile adapts a downloaded byte slice to the multipart.File interface
// the S3 client expects.
type seedFile struct {
	*bytes.Reader
}

func (seedFile) Close() error { return nil }

func createProductWithImage(db *gorm.DB, s3Client *s3.Client, httpClient *http.Client, title, description string, price, discount float64, stock, index int, log *logger.Logger) (*models.Product, error) {
	imageURL := fmt.Sprintf("https://picsum.photos/seed/myshop-%d/640/480", index)

	log.Info("Fetching product image from %s", imageURL)
	resp, err := httpClient.Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image API returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	if len(imageData) == 0 {
		return nil, fmt.Errorf("received empty image data")
	}

	log.Info("Downloaded image: %d bytes", len(imageData))

	fileKey := fmt.Sprintf("products/seed_%d.jpg", index)
	log.Info("Uploading image to S3: %s", fileKey)
	uploadedURL, err := s3Client.UploadFile(fileKey, seedFile{bytes.NewReader(imageData)}, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("failed to upload image to S3: %w", err)
	}

	log.Info("Image uploaded successfully: %s", uploadedURL)

	product := &models.Product{
		Title:       title,
		Description: description,
		Price:       price,
		Discount:    discount,
		Stock:       stock,
		ImageURL:    uploadedURL,
		Status:      models.ProductStatusLive,
	}

	if err := product.BeforeCreate(nil); err != nil {
		return nil, fmt.Errorf("failed to generate product ID: %w", err)
	}

	if err := db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Info("Created product: %s", product.Title)
	return product, nil
}

func createSampleOrder(db *gorm.DB, userID string, productIDs []string, log *logger.Logger) error {
	var existingOrder models.Order
	result := db.Where("user_id = ?", userID).First(&existingOrder)
	if result.Error == nil {
		log.Info("Sample order for user %s already exists, skipping", userID)
		return nil
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productIDs[0]).Error; err != nil {
		return fmt.Errorf("failed to load product for sample order: %w", err)
	}

	unitPrice := product.Price
	if product.Discount > 0 {
		unitPrice = product.Price * (1 - product.Discount/100)
	}

	order := &models.Order{
		UserID: userID,
		Status: models.OrderStatusPending,
		Total:  unitPrice * 2,
	}
	if err := order.BeforeCreate(nil); err != nil {
		return fmt.Errorf("failed to generate order ID: %w", err)
	}
	if err := db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create sample order: %w", err)
	}

	item := &models.OrderItem{
		OrderID:   order.ID,
		ProductID: product.ID,
		Title:     product.Title,
		UnitPrice: unitPrice,
		Quantity:  2,
	}
	if err := item.BeforeCreate(nil); err != nil {
		return fmt.Errorf("failed to generate order item ID: %w", err)
	}
	if err := db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create sample order item: %w", err)
	}

	log.Info("Created sample order %s for user %s", order.ID, userID)
	return nil
}

func pushWelcomeNotification(ctx context.Context, redisClient *redis.Client, userID string) error {
	notification := map[string]interface{}{
		"id":        fmt.Sprintf("%d_%s", time.Now().UnixNano(), userID),
		"title":     "Welcome to the store",
		"message":   "Thanks for joining! Complete your profile to start ordering.",
		"timestamp": time.Now().UTC(),
		"is_read":   false,
	}

	notificationJSON, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	key := fmt.Sprintf("notifications:%s", userID)
	if err := redisClient.LPush(ctx, key, notificationJSON).Err(); err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}
	redisClient.Expire(ctx, key, 30*24*time.Hour)

	return nil
}

package usecase

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"myshop/pkg/logger"
	"myshop/pkg/s3"
	"myshop/services/catalog/internal/entity"
	"myshop/services/catalog/internal/repo/persistent"

	"github.com/google/uuid"
)

// ProductInput carries the admin-supplied product fields; the image arrives
// separately as a multipart file.
type ProductInput struct {
	Title       string
	Description string
	Price       float64
	Discount    float64
	Stock       int
}

type ProductUseCase interface {
	CreateProduct(input ProductInput, imageFile *multipart.FileHeader) (*entity.Product, error)
	UpdateProduct(productID string, input ProductInput, imageFile *multipart.FileHeader) (*entity.Product, error)
	ArchiveProduct(productID string) error
	GetProduct(productID string) (*entity.Product, error)
	ListProducts(search string, includeArchived bool, limit, offset int) ([]*entity.Product, int64, error)
}

type productUseCase struct {
	productRepo persistent.ProductRepository
	s3Client    *s3.Client
	logger      *logger.Logger
}

func NewProductUseCase(productRepo persistent.ProductRepository, s3Client *s3.Client, logger *logger.Logger) ProductUseCase {
	return &productUseCase{
		productRepo: productRepo,
		s3Client:    s3Client,
		logger:      logger,
	}
}

func (uc *productUseCase) CreateProduct(input ProductInput, imageFile *multipart.FileHeader) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	imageURL := ""
	if imageFile != nil {
		uploadedURL, err := uc.uploadImage(imageFile)
		if err != nil {
			return nil, err
		}
		imageURL = uploadedURL
	}

	product := &entity.Product{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Discount:    input.Discount,
		Stock:       input.Stock,
		ImageURL:    imageURL,
		Status:      entity.ProductStatusLive,
	}

	if err := uc.productRepo.Create(product); err != nil {
		uc.logger.Error("Failed to create product: %v", err)
		return nil, fmt.Errorf("failed to create product")
	}

	uc.logger.Info("Created product %s (%s)", product.ID, product.Title)
	return product, nil
}

func (uc *productUseCase) UpdateProduct(productID string, input ProductInput, imageFile *multipart.FileHeader) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("product not found")
	}

	product.Title = strings.TrimSpace(input.Title)
	product.Description = strings.TrimSpace(input.Description)
	product.Price = input.Price
	product.Discount = input.Discount
	product.Stock = input.Stock

	if imageFile != nil {
		uploadedURL, err := uc.uploadImage(imageFile)
		if err != nil {
			return nil, err
		}
		product.ImageURL = uploadedURL
	}

	if err := uc.productRepo.Update(product); err != nil {
		uc.logger.Error("Failed to update product: %v", err)
		return nil, fmt.Errorf("failed to update product")
	}

	return product, nil
}

// ArchiveProduct hides the product from the storefront but keeps it so past
// orders still resolve their line items.
func (uc *productUseCase) ArchiveProduct(productID string) error {
	if _, err := uc.productRepo.GetByID(productID); err != nil {
		return fmt.Errorf("product not found")
	}

	if err := uc.productRepo.Archive(productID); err != nil {
		uc.logger.Error("Failed to archive product: %v", err)
		return fmt.Errorf("failed to archive product")
	}

	uc.logger.Info("Archived product %s", productID)
	return nil
}

func (uc *productUseCase) GetProduct(productID string) (*entity.Product, error) {
	return uc.productRepo.GetByID(productID)
}

func (uc *productUseCase) ListProducts(search string, includeArchived bool, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.List(strings.TrimSpace(search), includeArchived, limit, offset)
}

func (uc *productUseCase) uploadImage(imageFile *multipart.FileHeader) (string, error) {
	src, err := imageFile.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer src.Close()

	fileKey := fmt.Sprintf("products/%s%s", uuid.New().String(), filepath.Ext(imageFile.Filename))
	contentType := imageFile.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	uploadedURL, err := uc.s3Client.UploadFile(fileKey, src, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload product image: %v", err)
		return "", fmt.Errorf("failed to upload product image")
	}
	return uploadedURL, nil
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("product title is required")
	}
	if input.Price <= 0 {
		return fmt.Errorf("product price must be positive")
	}
	if input.Discount < 0 || input.Discount >= 100 {
		return fmt.Errorf("discount must be between 0 and 100")
	}
	if input.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	return nil
}

package persistent

import (
	"myshop/pkg/models"
	"myshop/services/catalog/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(search string, includeArchived bool, limit, offset int) ([]*entity.Product, int64, error)
	Update(product *entity.Product) error
	Archive(id string) error
	AdjustStock(id string, delta int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *entity.Product) error {
	productModel := ToProductModel(product)
	if productModel.ID == "" {
		productModel.ID = uuid.New().String()
	}
	if err := r.db.Create(productModel).Error; err != nil {
		return err
	}
	*product = *ToProductEntity(productModel)
	return nil
}

func (r *productRepository) GetByID(id string) (*entity.Product, error) {
	var productModel models.Product
	if err := r.db.Where("id = ?", id).First(&productModel).Error; err != nil {
		return nil, err
	}
	return ToProductEntity(&productModel), nil
}

func (r *productRepository) List(search string, includeArchived bool, limit, offset int) ([]*entity.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if !includeArchived {
		query = query.Where("status = ?", string(models.ProductStatusLive))
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var productModels []models.Product
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&productModels).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*entity.Product, len(productModels))
	for i := range productModels {
		products[i] = ToProductEntity(&productModels[i])
	}
	return products, total, nil
}

func (r *productRepository) Update(product *entity.Product) error {
	productModel := ToProductModel(product)
	return r.db.Save(productModel).Error
}

func (r *productRepository) Archive(id string) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		Update("status", string(models.ProductStatusArchived)).Error
}

func (r *productRepository) AdjustStock(id string, delta int) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

package persistent

import (
	"myshop/pkg/models"

	"gorm.io/gorm"
)

// ProductLookup resolves the catalog snapshot stored inside cart documents.
type ProductLookup interface {
	GetProduct(productID string) (*models.Product, error)
}

type productLookup struct {
	db *gorm.DB
}

func NewProductLookup(db *gorm.DB) ProductLookup {
	return &productLookup{db: db}
}

func (r *productLookup) GetProduct(productID string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("id = ?", productID).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductStatus string

const (
	ProductStatusLive     ProductStatus = "live"
	ProductStatusArchived ProductStatus = "archived"
)

type Product struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	Title       string         `gorm:"not null;index" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Discount    float64        `gorm:"default:0" json:"discount"`
	Stock       int            `gorm:"default:0" json:"stock"`
	ImageURL    string         `json:"image_url"`
	Status      ProductStatus  `gorm:"type:varchar(20);default:'live'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

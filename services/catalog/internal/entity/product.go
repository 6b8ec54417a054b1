package entity

import "time"

type ProductStatus string

const (
	ProductStatusLive     ProductStatus = "live"
	ProductStatusArchived ProductStatus = "archived"
)

type Product struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Discount    float64       `json:"discount"`
	Stock       int           `json:"stock"`
	ImageURL    string        `json:"image_url"`
	Status      ProductStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// EffectivePrice applies the percentage discount to the list price.
func (p *Product) EffectivePrice() float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return p.Price * (1 - p.Discount/100)
}

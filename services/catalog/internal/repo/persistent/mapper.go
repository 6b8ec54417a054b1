package persistent

import (
	"myshop/pkg/models"
	"myshop/services/catalog/internal/entity"
)

func ToProductEntity(m *models.Product) *entity.Product {
	if m == nil {
		return nil
	}

	return &entity.Product{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Discount:    m.Discount,
		Stock:       m.Stock,
		ImageURL:    m.ImageURL,
		Status:      entity.ProductStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToProductModel(e *entity.Product) *models.Product {
	if e == nil {
		return nil
	}

	return &models.Product{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Price:       e.Price,
		Discount:    e.Discount,
		Stock:       e.Stock,
		ImageURL:    e.ImageURL,
		Status:      models.ProductStatus(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToOrderEntity(m *models.Order) *entity.Order {
	if m == nil {
		return nil
	}

	items := make([]entity.OrderItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = entity.OrderItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}

	return &entity.Order{
		ID:        m.ID,
		UserID:    m.UserID,
		Status:    entity.OrderStatus(m.Status),
		Total:     m.Total,
		Items:     items,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToOrderModel(e *entity.Order) *models.Order {
	if e == nil {
		return nil
	}

	items := make([]models.OrderItem, len(e.Items))
	for i, item := range e.Items {
		items[i] = models.OrderItem{
			ID:        item.ID,
			OrderID:   e.ID,
			ProductID: item.ProductID,
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}

	return &models.Order{
		ID:        e.ID,
		UserID:    e.UserID,
		Status:    models.OrderStatus(e.Status),
		Total:     e.Total,
		Items:     items,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

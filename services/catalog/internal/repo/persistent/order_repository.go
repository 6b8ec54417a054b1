package persistent

import (
	"myshop/pkg/models"
	"myshop/services/catalog/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Order, int64, error)
	ListAll(status string, limit, offset int) ([]*entity.Order, int64, error)
	UpdateStatus(id string, status entity.OrderStatus) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *entity.Order) error {
	orderModel := ToOrderModel(order)
	if orderModel.ID == "" {
		orderModel.ID = uuid.New().String()
	}
	if err := r.db.Create(orderModel).Error; err != nil {
		return err
	}
	*order = *ToOrderEntity(orderModel)
	return nil
}

func (r *orderRepository) GetByID(id string) (*entity.Order, error) {
	var orderModel models.Order
	if err := r.db.Preload("Items").Where("id = ?", id).First(&orderModel).Error; err != nil {
		return nil, err
	}
	return ToOrderEntity(&orderModel), nil
}

func (r *orderRepository) ListByUser(userID string, limit, offset int) ([]*entity.Order, int64, error) {
	var total int64
	if err := r.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orderModels []models.Order
	if err := r.db.Preload("Items").Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&orderModels).Error; err != nil {
		return nil, 0, err
	}

	return toOrderEntities(orderModels), total, nil
}

func (r *orderRepository) ListAll(status string, limit, offset int) ([]*entity.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orderModels []models.Order
	listQuery := r.db.Preload("Items")
	if status != "" {
		listQuery = listQuery.Where("status = ?", status)
	}
	if err := listQuery.Order("created_at DESC").Limit(limit).Offset(offset).Find(&orderModels).Error; err != nil {
		return nil, 0, err
	}

	return toOrderEntities(orderModels), total, nil
}

func (r *orderRepository) UpdateStatus(id string, status entity.OrderStatus) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", string(status)).Error
}

func toOrderEntities(orderModels []models.Order) []*entity.Order {
	orders := make([]*entity.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = ToOrderEntity(&orderModels[i])
	}
	return orders
}

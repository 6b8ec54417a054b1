package usecase

import (
	"fmt"

	"myshop/pkg/logger"
	"myshop/pkg/queue"
	"myshop/services/catalog/internal/entity"
	"myshop/services/catalog/internal/repo/persistent"
)

type OrderItemInput struct {
	ProductID string
	Quantity  int
}

type OrderUseCase interface {
	CreateOrder(userID string, items []OrderItemInput) (*entity.Order, error)
	GetOrder(userID, orderID string, isAdmin bool) (*entity.Order, error)
	ListMyOrders(userID string, limit, offset int) ([]*entity.Order, int64, error)
	ListAllOrders(status string, limit, offset int) ([]*entity.Order, int64, error)
	UpdateOrderStatus(orderID string, status entity.OrderStatus) (*entity.Order, error)
}

type orderUseCase struct {
	orderRepo     persistent.OrderRepository
	productRepo   persistent.ProductRepository
	directoryRepo persistent.DirectoryRepository
	queueClient   *queue.Client
	logger        *logger.Logger
}

func NewOrderUseCase(
	orderRepo persistent.OrderRepository,
	productRepo persistent.ProductRepository,
	directoryRepo persistent.DirectoryRepository,
	queueClient *queue.Client,
	logger *logger.Logger,
) OrderUseCase {
	return &orderUseCase{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		directoryRepo: directoryRepo,
		queueClient:   queueClient,
		logger:        logger,
	}
}

// CreateOrder snapshots each line item's title and discounted price at
// purchase time, so later catalog edits never rewrite order history.
func (uc *orderUseCase) CreateOrder(userID string, items []OrderItemInput) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	var orderItems []entity.OrderItem
	total := 0.0

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("item quantity must be at least 1")
		}

		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s not found", item.ProductID)
		}
		if product.Status != entity.ProductStatusLive {
			return nil, fmt.Errorf("product %s is no longer available", product.Title)
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("insufficient stock for %s", product.Title)
		}

		unitPrice := product.EffectivePrice()
		orderItems = append(orderItems, entity.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			UnitPrice: unitPrice,
			Quantity:  item.Quantity,
		})
		total += unitPrice * float64(item.Quantity)
	}

	order := &entity.Order{
		UserID: userID,
		Status: entity.OrderStatusPending,
		Total:  total,
		Items:  orderItems,
	}

	if err := uc.orderRepo.Create(order); err != nil {
		uc.logger.Error("Failed to create order: %v", err)
		return nil, fmt.Errorf("failed to create order")
	}

	for _, item := range order.Items {
		if err := uc.productRepo.AdjustStock(item.ProductID, -item.Quantity); err != nil {
			uc.logger.Warn("Failed to adjust stock for %s: %v", item.ProductID, err)
		}
	}

	if uc.directoryRepo != nil {
		if email, err := uc.directoryRepo.GetEmail(userID); err == nil {
			uc.sendEmailAsync(email, "Order confirmed",
				fmt.Sprintf("Your order %s for %.2f has been placed.", order.ID, order.Total))
		}
	}

	uc.logger.Info("Created order %s for user %s (%d items)", order.ID, userID, len(order.Items))
	return order, nil
}

func (uc *orderUseCase) GetOrder(userID, orderID string, isAdmin bool) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("order not found")
	}
	if !isAdmin && order.UserID != userID {
		return nil, fmt.Errorf("order not found")
	}
	return order, nil
}

func (uc *orderUseCase) ListMyOrders(userID string, limit, offset int) ([]*entity.Order, int64, error) {
	return uc.orderRepo.ListByUser(userID, limit, offset)
}

func (uc *orderUseCase) ListAllOrders(status string, limit, offset int) ([]*entity.Order, int64, error) {
	return uc.orderRepo.ListAll(status, limit, offset)
}

func (uc *orderUseCase) UpdateOrderStatus(orderID string, status entity.OrderStatus) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("order not found")
	}

	if !order.CanTransitionTo(status) {
		return nil, fmt.Errorf("cannot move order from %s to %s", order.Status, status)
	}

	if err := uc.orderRepo.UpdateStatus(orderID, status); err != nil {
		uc.logger.Error("Failed to update order status: %v", err)
		return nil, fmt.Errorf("failed to update order status")
	}

	// Cancelled orders return their stock to the shelf
	if status == entity.OrderStatusCancelled {
		for _, item := range order.Items {
			if err := uc.productRepo.AdjustStock(item.ProductID, item.Quantity); err != nil {
				uc.logger.Warn("Failed to restock %s: %v", item.ProductID, err)
			}
		}
	}

	order.Status = status
	uc.logger.Info("Order %s moved to %s", orderID, status)
	return order, nil
}

func (uc *orderUseCase) sendEmailAsync(to, subject, body string) {
	if uc.queueClient == nil || to == "" {
		return
	}
	go func() {
		task := queue.EmailTask{To: to, Subject: subject, Body: body}
		if err := uc.queueClient.PublishEmailTask(task); err != nil {
			uc.logger.Warn("Failed to queue email for %s: %v", to, err)
		}
	}()
}

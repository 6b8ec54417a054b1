package entity

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Status    OrderStatus `json:"status"`
	Total     float64     `json:"total"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CanTransitionTo restricts status changes to the forward fulfilment chain;
// cancellation is allowed until the order ships.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	switch next {
	case OrderStatusPaid:
		return o.Status == OrderStatusPending
	case OrderStatusShipped:
		return o.Status == OrderStatusPaid
	case OrderStatusDelivered:
		return o.Status == OrderStatusShipped
	case OrderStatusCancelled:
		return o.Status == OrderStatusPending || o.Status == OrderStatusPaid
	default:
		return false
	}
}

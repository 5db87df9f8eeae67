package ports

import (
	"context"

	"github.com/onlineshop/order-system/internal/core/domain"
)

// OrderItemInput references a product and quantity when placing an order.
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput carries the fields for placing an order directly
// (without going through a cart).
type CreateOrderInput struct {
	CustomerID string
	Items      []OrderItemInput
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindAll(ctx context.Context) ([]*domain.Order, error)
	FindByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

// OrderService exposes order placement and lifecycle operations.
type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/onlineshop/order-system/internal/core/domain"
	"github.com/onlineshop/order-system/internal/core/ports"
)

// OrderService implements order placement and lifecycle transitions.
type OrderService struct {
	orders    ports.OrderRepository
	customers ports.CustomerRepository
	products  ports.ProductRepository
	log       zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	customers ports.CustomerRepository,
	products ports.ProductRepository,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{orders: orders, customers: customers, products: products, log: log}
}

// Create places an order from an explicit item list. Unit prices are
// captured from the catalog at this moment and frozen on the order.
func (s *OrderService) Create(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	if _, err := s.customers.FindByID(ctx, in.CustomerID); err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	total := 0.0
	for _, it := range in.Items {
		product, err := s.products.FindByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ProductID:       product.ID,
			ProductName:     product.Name,
			Quantity:        it.Quantity,
			PriceAtPurchase: product.Price,
		})
		total += product.Price * float64(it.Quantity)
	}

	now := time.Now().UTC()
	order, err := s.orders.Create(ctx, &domain.Order{
		CustomerID:  in.CustomerID,
		Status:      domain.OrderPending,
		Items:       items,
		TotalAmount: total,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("order_id", order.ID).Str("customer_id", in.CustomerID).Float64("total", total).Msg("order created")
	return order, nil
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.FindAll(ctx)
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	return s.orders.FindByCustomer(ctx, customerID)
}

// UpdateStatus applies a lifecycle transition, rejecting moves the
// order state machine does not allow.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, status)
	}
	updated, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("order_id", id).Str("status", string(status)).Msg("order status updated")
	return updated, nil
}

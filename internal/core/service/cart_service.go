package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/onlineshop/order-system/internal/core/domain"
	"github.com/onlineshop/order-system/internal/core/ports"
)

// CartService implements per-customer cart manipulation and checkout.
type CartService struct {
	carts     ports.CartRepository
	customers ports.CustomerRepository
	products  ports.ProductRepository
	orders    ports.OrderRepository
	log       zerolog.Logger
}

func NewCartService(
	carts ports.CartRepository,
	customers ports.CustomerRepository,
	products ports.ProductRepository,
	orders ports.OrderRepository,
	log zerolog.Logger,
) *CartService {
	return &CartService{carts: carts, customers: customers, products: products, orders: orders, log: log}
}

// Get returns the customer's cart, creating an empty one on first access.
func (s *CartService) Get(ctx context.Context, customerID string) (*domain.Cart, error) {
	cart, err := s.carts.FindByCustomer(ctx, customerID)
	if err == domain.ErrCartNotFound {
		return s.createEmpty(ctx, customerID)
	}
	return cart, err
}

// AddItem appends a product line, merging quantities when the product
// is already in the cart.
func (s *CartService) AddItem(ctx context.Context, customerID string, in ports.CartItemInput) (*domain.Cart, error) {
	cart, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.products.FindByID(ctx, in.ProductID); err != nil {
		return nil, err
	}

	if existing := cart.Item(in.ProductID); existing != nil {
		existing.Quantity += in.Quantity
	} else {
		cart.Items = append(cart.Items, domain.CartItem{ProductID: in.ProductID, Quantity: in.Quantity})
	}

	cart.UpdatedAt = time.Now().UTC()
	return s.carts.Save(ctx, cart)
}

// UpdateItem sets the quantity of a cart line; quantity <= 0 removes it.
func (s *CartService) UpdateItem(ctx context.Context, customerID, productID string, quantity int) (*domain.Cart, error) {
	cart, err := s.carts.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	item := cart.Item(productID)
	if item == nil {
		return nil, domain.ErrCartItemNotFound
	}

	if quantity <= 0 {
		cart.Items = removeItem(cart.Items, productID)
	} else {
		item.Quantity = quantity
	}

	cart.UpdatedAt = time.Now().UTC()
	return s.carts.Save(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, customerID, productID string) (*domain.Cart, error) {
	cart, err := s.carts.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cart.Items = removeItem(cart.Items, productID)
	cart.UpdatedAt = time.Now().UTC()
	return s.carts.Save(ctx, cart)
}

// Checkout converts the cart's items into a pending order, capturing
// current catalog prices and computing the total, then empties the cart.
func (s *CartService) Checkout(ctx context.Context, cartID string) (*domain.Order, error) {
	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrCartEmpty
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	total := 0.0
	for _, it := range cart.Items {
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
		CustomerID:  cart.CustomerID,
		Status:      domain.OrderPending,
		Items:       items,
		TotalAmount: total,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	cart.Items = nil
	cart.UpdatedAt = now
	if _, err := s.carts.Save(ctx, cart); err != nil {
		// The order is already placed; a stale cart is recoverable.
		s.log.Warn().Err(err).Str("cart_id", cartID).Msg("failed to clear cart after checkout")
	}

	s.log.Info().Str("order_id", order.ID).Str("cart_id", cartID).Float64("total", total).Msg("cart checked out")
	return order, nil
}

func (s *CartService) createEmpty(ctx context.Context, customerID string) (*domain.Cart, error) {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return s.carts.Create(ctx, &domain.Cart{
		CustomerID: customerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func removeItem(items []domain.CartItem, productID string) []domain.CartItem {
	out := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}

package ports

import (
	"context"

	"github.com/onlineshop/order-system/internal/core/domain"
)

// CartItemInput adds or updates a product line in a cart.
type CartItemInput struct {
	ProductID string
	Quantity  int
}

// CartRepository defines persistence operations for carts. Save
// replaces the full item list in one write.
type CartRepository interface {
	Create(ctx context.Context, c *domain.Cart) (*domain.Cart, error)
	FindByID(ctx context.Context, id string) (*domain.Cart, error)
	FindByCustomer(ctx context.Context, customerID string) (*domain.Cart, error)
	Save(ctx context.Context, c *domain.Cart) (*domain.Cart, error)
}

// CartService exposes cart manipulation and checkout.
type CartService interface {
	Get(ctx context.Context, customerID string) (*domain.Cart, error)
	AddItem(ctx context.Context, customerID string, in CartItemInput) (*domain.Cart, error)
	UpdateItem(ctx context.Context, customerID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, customerID, productID string) (*domain.Cart, error)
	Checkout(ctx context.Context, cartID string) (*domain.Order, error)
}

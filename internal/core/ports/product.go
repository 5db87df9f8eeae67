package ports

import (
	"context"

	"github.com/onlineshop/order-system/internal/core/domain"
)

// ProductInput carries the mutable catalog fields.
type ProductInput struct {
	Name          string
	Description   string
	Price         float64
	StockQuantity int
	Category      string
}

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductService exposes catalog CRUD to the HTTP layer.
type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

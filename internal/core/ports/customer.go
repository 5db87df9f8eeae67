package ports

import (
	"context"

	"github.com/onlineshop/order-system/internal/core/domain"
)

// CustomerInput carries the mutable profile fields.
type CustomerInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
}

// CustomerRepository defines persistence operations for customer profiles.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

// CustomerService exposes profile CRUD to the HTTP layer.
type CustomerService interface {
	Create(ctx context.Context, in CustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Update(ctx context.Context, id string, in CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

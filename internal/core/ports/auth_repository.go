package ports

import (
	"context"

	"github.com/onlineshop/order-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// LinkCustomer records the customer profile id on the user document.
	LinkCustomer(ctx context.Context, userID, customerID string) error
	Delete(ctx context.Context, id string) error
}

// RoleRepository resolves role names into role records.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
}

// RefreshTokenRepository is the durable store of outstanding refresh
// tokens. All mutations are atomic per call.
type RefreshTokenRepository interface {
	// Create generates a fresh opaque value and persists it for userID.
	Create(ctx context.Context, userID string) (*domain.RefreshToken, error)
	// FindByValue returns domain.ErrInvalidRefreshToken when no record exists.
	FindByValue(ctx context.Context, value string) (*domain.RefreshToken, error)
	// DeleteByValue reports whether a record was actually removed, so a
	// caller racing another rotation can tell it lost.
	DeleteByValue(ctx context.Context, value string) (bool, error)
	// DeleteByUser removes every outstanding token for the subject.
	DeleteByUser(ctx context.Context, userID string) error
}

// AuditRepository persists auth audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}

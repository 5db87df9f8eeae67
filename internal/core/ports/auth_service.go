package ports

import (
	"context"

	"github.com/onlineshop/order-system/internal/core/domain"
)

// RegisterInput carries the fields required to create an account with
// its linked customer profile.
type RegisterInput struct {
	Username    string
	Password    string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService is the single entry point the HTTP layer uses for
// registration, login, token rotation, and logout.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshValue string) (*TokenPair, error)
	Logout(ctx context.Context, username string) error
}

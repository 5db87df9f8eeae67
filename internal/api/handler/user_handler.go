package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onlineshop/order-system/internal/core/domain"
	"github.com/onlineshop/order-system/internal/core/ports"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct {
	users     ports.UserRepository
	customers ports.CustomerService
}

func NewUserHandler(users ports.UserRepository, customers ports.CustomerService) *UserHandler {
	return &UserHandler{users: users, customers: customers}
}

type profileResponse struct {
	Username string           `json:"username"`
	Email    string           `json:"email,omitempty"`
	Roles    []string         `json:"roles"`
	Customer *domain.Customer `json:"customer,omitempty"`
}

// Me returns the caller's account and linked customer profile.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.users.FindByUsername(c.Request().Context(), username)
	if err != nil {
		return err
	}

	resp := profileResponse{
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.Roles,
	}

	// The profile link is optional; an account without one still has a
	// valid /me response.
	if customer, err := h.customers.GetByUserID(c.Request().Context(), user.ID); err == nil {
		resp.Customer = customer
	}

	return c.JSON(http.StatusOK, resp)
}

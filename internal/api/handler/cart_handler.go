package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/onlineshop/order-system/internal/api/metrics"
	"github.com/onlineshop/order-system/internal/core/ports"
)

type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

type cartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// Get handles GET /api/cart/:customerId: returns the cart, creating an
// empty one on first access.
func (h *CartHandler) Get(c echo.Context) error {
	cart, err := h.service.Get(c.Request().Context(), c.Param("customerId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// AddItem handles POST /api/cart/:customerId/items.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.service.AddItem(c.Request().Context(), c.Param("customerId"), ports.CartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// UpdateItem handles PUT /api/cart/:customerId/items/:productId.
// Quantity zero removes the line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		// Also accept the quantity as a query parameter.
		if q := c.QueryParam("quantity"); q != "" {
			n, convErr := strconv.Atoi(q)
			if convErr != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid quantity")
			}
			req.Quantity = n
		} else {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
	}

	cart, err := h.service.UpdateItem(c.Request().Context(), c.Param("customerId"), c.Param("productId"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/cart/:customerId/items/:productId.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	cart, err := h.service.RemoveItem(c.Request().Context(), c.Param("customerId"), c.Param("productId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// Checkout handles POST /api/cart/:cartId/checkout: converts the cart
// into a pending order.
func (h *CartHandler) Checkout(c echo.Context) error {
	order, err := h.service.Checkout(c.Request().Context(), c.Param("cartId"))
	if err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.WithLabelValues("checkout").Inc()
	return c.JSON(http.StatusCreated, order)
}

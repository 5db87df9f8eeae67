package domain

import (
	"errors"
	"time"
)

var ErrCartNotFound = errors.New("cart not found")
var ErrCartItemNotFound = errors.New("item not found in cart")
var ErrCartEmpty = errors.New("cart is empty")

// CartItem is a product reference with a quantity inside a cart.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart holds the pending items of a single customer. One cart per
// customer; checkout converts the items to an order and empties it.
type Cart struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Items      []CartItem `json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Item returns a pointer to the cart line for productID, or nil.
func (c *Cart) Item(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

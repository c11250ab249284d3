package cart

import (
	"time"

	appmenu "foodorder/application/menu"
	"foodorder/domain/cart"
)

// AddItemRequest MenuID comes from the route.
type AddItemRequest struct {
	MenuID   uint `json:"-"`
	Quantity int  `json:"quantity"`
}

// UpdateItemRequest Quantity is a pointer so a missing field is told apart from zero.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity"`
}

// CartResponse is an open cart with its lines and their menus.
type CartResponse struct {
	ID         uint               `json:"id"`
	UserID     uint               `json:"userId"`
	Status     bool               `json:"status"`
	TotalPrice int64              `json:"totalPrice"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
	CartItems  []CartItemResponse `json:"cartItems"`
}

type CartItemResponse struct {
	ID       uint                  `json:"id"`
	CartID   uint                  `json:"cartId"`
	MenuID   uint                  `json:"menuId"`
	Quantity int                   `json:"quantity"`
	Menu     *appmenu.MenuResponse `json:"menu,omitempty"`
}

// AddItemResult carries the cart and the affected line.
type AddItemResult struct {
	CustomerCart CartResponse     `json:"customerCart"`
	CartItem     CartItemResponse `json:"cartItem"`

	MenuName string `json:"-"`
	Quantity int    `json:"-"`
}

// Outcome says what UpdateItem did.
type Outcome int

const (
	Unchanged Outcome = iota
	Modified
	Removed
)

type UpdateItemResult struct {
	Outcome  Outcome
	MenuName string
	Quantity int
	Cart     CartResponse
}

func toCartResponse(c *cart.Cart) CartResponse {
	items := c.Items()
	resp := CartResponse{
		ID:         c.ID(),
		UserID:     c.UserID(),
		Status:     c.CheckedOut(),
		TotalPrice: c.TotalPrice(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
		CartItems:  make([]CartItemResponse, len(items)),
	}
	for i, it := range items {
		resp.CartItems[i] = toCartItemResponse(it)
	}
	return resp
}

func toCartItemResponse(it *cart.Item) CartItemResponse {
	return CartItemResponse{
		ID:       it.ID(),
		CartID:   it.CartID(),
		MenuID:   it.MenuID(),
		Quantity: it.Quantity(),
		Menu:     appmenu.ToMenuResponse(it.Menu()),
	}
}

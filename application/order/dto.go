package order

import (
	"time"

	appmenu "foodorder/application/menu"
	"foodorder/domain/order"
)

// OrderResponse Order response
type OrderResponse struct {
	ID         uint                `json:"id"`
	UserID     uint                `json:"userId"`
	TotalPrice int64               `json:"totalPrice"`
	CreatedAt  time.Time           `json:"createdAt"`
	OrderItems []OrderItemResponse `json:"orderItems"`
}

// OrderItemResponse Order item response. Menu is absent once the menu has been removed.
type OrderItemResponse struct {
	ID       uint                  `json:"id"`
	OrderID  uint                  `json:"orderId"`
	MenuID   uint                  `json:"menuId"`
	Quantity int                   `json:"quantity"`
	Menu     *appmenu.MenuResponse `json:"menu,omitempty"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	items := o.Items()
	resp := OrderResponse{
		ID:         o.ID(),
		UserID:     o.UserID(),
		TotalPrice: o.TotalPrice(),
		CreatedAt:  o.CreatedAt(),
		OrderItems: make([]OrderItemResponse, len(items)),
	}
	for i, it := range items {
		resp.OrderItems[i] = OrderItemResponse{
			ID:       it.ID(),
			OrderID:  o.ID(),
			MenuID:   it.MenuID(),
			Quantity: it.Quantity(),
			Menu:     appmenu.ToMenuResponse(it.Menu()),
		}
	}
	return resp
}

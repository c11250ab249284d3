package po

import (
	"time"

	"foodorder/domain/menu"
	"foodorder/domain/order"
)

// OrderPO Order persistence object
type OrderPO struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"index;not null"` // Only store ID, no association with User
	TotalPrice int64     `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO Order item persistence object
type OrderItemPO struct {
	ID        uint      `gorm:"primaryKey"`
	OrderID   uint      `gorm:"index;not null"`
	MenuID    uint      `gorm:"index;not null"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (OrderItemPO) TableName() string {
	return "order_items"
}

// FromOrderDomain Convert domain model to persistence objects; item OrderIDs are
// filled in by the repository after the order row exists.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO) {
	orderPO := &OrderPO{
		ID:         o.ID(),
		UserID:     o.UserID(),
		TotalPrice: o.TotalPrice(),
		CreatedAt:  o.CreatedAt(),
	}
	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, it := range items {
		itemPOs[i] = OrderItemPO{
			ID:       it.ID(),
			MenuID:   it.MenuID(),
			Quantity: it.Quantity(),
		}
	}
	return orderPO, itemPOs
}

// ToDomain rebuilds an order; menus may lack entries for menus removed since.
func (p *OrderPO) ToDomain(items []OrderItemPO, menus map[uint]*menu.Menu) *order.Order {
	dto := order.ReconstructionDTO{
		ID:         p.ID,
		UserID:     p.UserID,
		TotalPrice: p.TotalPrice,
		CreatedAt:  p.CreatedAt,
		Items:      make([]order.ItemDTO, 0, len(items)),
	}
	for _, it := range items {
		dto.Items = append(dto.Items, order.ItemDTO{ID: it.ID, MenuID: it.MenuID, Quantity: it.Quantity, Menu: menus[it.MenuID]})
	}
	return order.RebuildFromDTO(dto)
}

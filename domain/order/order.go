/*
Package order is the immutable record of a checked-out cart.
*/
package order

import (
	"time"

	"foodorder/domain/menu"
	"foodorder/domain/shared"
)

// Order snapshots what was bought and for how much. It has no behavior after creation.
type Order struct {
	id         uint
	userID     uint
	totalPrice int64
	items      []Item
	createdAt  time.Time
}

// Item is one snapshot line.
type Item struct {
	id       uint
	menuID   uint
	quantity int
	menu     *menu.Menu
}

// Line is the input for one order item.
type Line struct {
	MenuID   uint
	Quantity int
}

// New snapshots a cart's total and lines.
func New(userID uint, totalPrice int64, lines []Line) (*Order, error) {
	if len(lines) == 0 {
		return nil, shared.NewValidationError("order", "items", "Cart is empty")
	}
	if totalPrice < 0 {
		return nil, shared.NewValidationError("order", "totalPrice", "Total price cannot be negative!")
	}
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, shared.NewValidationError("order", "quantity", "Quantity must be a positive integer!")
		}
		items = append(items, Item{menuID: l.MenuID, quantity: l.Quantity})
	}
	return &Order{
		userID:     userID,
		totalPrice: totalPrice,
		items:      items,
		createdAt:  time.Now(),
	}, nil
}

func (o *Order) ID() uint             { return o.id }
func (o *Order) UserID() uint         { return o.userID }
func (o *Order) TotalPrice() int64    { return o.totalPrice }
func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

func (i Item) ID() uint         { return i.id }
func (i Item) MenuID() uint     { return i.menuID }
func (i Item) Quantity() int    { return i.quantity }
func (i Item) Menu() *menu.Menu { return i.menu }

// MarkPersisted stores generated ids after insert; itemIDs follow Items() order.
func (o *Order) MarkPersisted(id uint, itemIDs []uint) {
	o.id = id
	for i := range o.items {
		if i < len(itemIDs) {
			o.items[i].id = itemIDs[i]
		}
	}
}

// ReconstructionDTO rebuilds an Order from storage.
type ReconstructionDTO struct {
	ID         uint
	UserID     uint
	TotalPrice int64
	Items      []ItemDTO
	CreatedAt  time.Time
}

type ItemDTO struct {
	ID       uint
	MenuID   uint
	Quantity int
	Menu     *menu.Menu
}

func RebuildFromDTO(dto ReconstructionDTO) *Order {
	o := &Order{
		id:         dto.ID,
		userID:     dto.UserID,
		totalPrice: dto.TotalPrice,
		createdAt:  dto.CreatedAt,
		items:      make([]Item, 0, len(dto.Items)),
	}
	for _, it := range dto.Items {
		o.items = append(o.items, Item{id: it.ID, menuID: it.MenuID, quantity: it.Quantity, menu: it.Menu})
	}
	return o
}

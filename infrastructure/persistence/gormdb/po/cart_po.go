package po

import (
	"time"

	"foodorder/domain/cart"
	"foodorder/domain/menu"
)

// CartPO Cart persistence object
// OpenOwner holds the user id while the cart is open and NULL afterwards; its unique
// index allows at most one open cart per user.
type CartPO struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"index;not null"`
	Status     bool      `gorm:"not null;default:false"`
	OpenOwner  *uint     `gorm:"uniqueIndex:idx_carts_open_owner"`
	TotalPrice int64     `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (CartPO) TableName() string {
	return "carts"
}

// CartItemPO Cart item persistence object, unique per (cart, menu)
type CartItemPO struct {
	ID        uint      `gorm:"primaryKey"`
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_menu"`
	MenuID    uint      `gorm:"not null;uniqueIndex:idx_cart_menu;index"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CartItemPO) TableName() string {
	return "cart_items"
}

func openOwner(c *cart.Cart) *uint {
	if c.CheckedOut() {
		return nil
	}
	owner := c.UserID()
	return &owner
}

func FromCartDomain(c *cart.Cart) *CartPO {
	return &CartPO{
		ID:         c.ID(),
		UserID:     c.UserID(),
		Status:     c.CheckedOut(),
		OpenOwner:  openOwner(c),
		TotalPrice: c.TotalPrice(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
}

// CartColumns is the update set for an existing cart row.
func CartColumns(c *cart.Cart) map[string]interface{} {
	return map[string]interface{}{
		"status":      c.CheckedOut(),
		"open_owner":  openOwner(c),
		"total_price": c.TotalPrice(),
		"updated_at":  c.UpdatedAt(),
	}
}

func FromCartItemDomain(cartID uint, it *cart.Item) *CartItemPO {
	return &CartItemPO{
		ID:       it.ID(),
		CartID:   cartID,
		MenuID:   it.MenuID(),
		Quantity: it.Quantity(),
	}
}

// ToDomain rebuilds the aggregate; menus must hold every referenced menu.
func (p *CartPO) ToDomain(items []CartItemPO, menus map[uint]*menu.Menu) *cart.Cart {
	dto := cart.ReconstructionDTO{
		ID:         p.ID,
		UserID:     p.UserID,
		CheckedOut: p.Status,
		TotalPrice: p.TotalPrice,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Items:      make([]cart.ItemDTO, 0, len(items)),
	}
	for _, it := range items {
		dto.Items = append(dto.Items, cart.ItemDTO{ID: it.ID, Menu: menus[it.MenuID], Quantity: it.Quantity})
	}
	return cart.RebuildFromDTO(dto)
}

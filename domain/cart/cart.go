/*
Package cart is the shopping cart aggregate.

A Cart owns its line items and keeps totalPrice equal to the sum of quantity times menu
price over them; every mutation goes through the aggregate so the total is recomputed
in one place. A checked-out cart is frozen.
*/
package cart

import (
	"math"
	"time"

	"foodorder/domain/menu"
	"foodorder/domain/shared"
)

// Cart is the aggregate root.
type Cart struct {
	id         uint
	userID     uint
	checkedOut bool
	totalPrice int64
	items      []*Item
	createdAt  time.Time
	updatedAt  time.Time

	// Dirty tracking, consumed by the repository on Save
	isNew        bool
	dirty        bool
	removedItems []uint
}

// Item is a line in a cart. It is only reachable through its Cart.
type Item struct {
	id       uint
	cartID   uint
	menu     *menu.Menu
	quantity int
	isNew    bool
	dirty    bool
}

// New starts an empty open cart for userID.
func New(userID uint) *Cart {
	now := time.Now()
	return &Cart{
		userID:    userID,
		createdAt: now,
		updatedAt: now,
		isNew:     true,
	}
}

// ============================================================================
// Behavior
// ============================================================================

// AddItem adds quantity of m, merging into the existing line for the same menu.
func (c *Cart) AddItem(m *menu.Menu, quantity int) (*Item, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("cart", "quantity", "Quantity must be a positive integer!")
	}

	item := c.itemForMenu(m.ID())
	existing := 0
	if item != nil {
		existing = item.quantity
	}
	if quantity > math.MaxInt-existing {
		return nil, errQuantityTooLarge()
	}
	if _, ok := c.totalWith(m.ID(), m.Price(), existing+quantity); !ok {
		return nil, errQuantityTooLarge()
	}

	if item == nil {
		item = &Item{cartID: c.id, menu: m, isNew: true}
		c.items = append(c.items, item)
	}
	item.quantity += quantity
	item.dirty = true

	c.touch()
	return item, nil
}

// Change is the outcome of ChangeQuantity.
type Change struct {
	Item *Item

	// Diff is the change applied to totalPrice
	Diff int64

	// Removed is set when the quantity went to zero and the line was dropped
	Removed bool
}

// Unchanged reports whether ChangeQuantity left the cart as it was.
func (ch Change) Unchanged() bool {
	return ch.Diff == 0 && !ch.Removed
}

// ChangeQuantity sets the quantity of a line. Zero removes the line.
func (c *Cart) ChangeQuantity(itemID uint, quantity int) (Change, error) {
	if err := c.ensureOpen(); err != nil {
		return Change{}, err
	}
	if quantity < 0 {
		return Change{}, shared.NewValidationError("cart", "quantity", "Quantity must be zero or a positive integer!")
	}

	item := c.item(itemID)
	if item == nil {
		return Change{}, shared.NewError(shared.KindItemNotFound, "cart", "")
	}
	if quantity == 0 {
		removed, err := c.RemoveItem(itemID)
		if err != nil {
			return Change{}, err
		}
		return Change{Item: removed, Diff: -removed.Subtotal(), Removed: true}, nil
	}

	if quantity == item.quantity {
		return Change{Item: item}, nil
	}
	total, ok := c.totalWith(item.menu.ID(), item.menu.Price(), quantity)
	if !ok {
		return Change{}, errQuantityTooLarge()
	}
	before, ok := c.sum()
	if !ok {
		return Change{}, errTotalTooLarge()
	}
	diff := total - before
	item.quantity = quantity
	item.dirty = true
	c.touch()
	return Change{Item: item, Diff: diff}, nil
}

// RemoveItem drops a line and returns it.
func (c *Cart) RemoveItem(itemID uint) (*Item, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}
	for i, item := range c.items {
		if item.id != itemID {
			continue
		}
		c.items = append(c.items[:i], c.items[i+1:]...)
		if !item.isNew {
			c.removedItems = append(c.removedItems, item.id)
		}
		c.touch()
		return item, nil
	}
	return nil, shared.NewError(shared.KindItemNotFound, "cart", "")
}

// RemoveMenu drops the line for menuID, if any, when the menu leaves the catalog.
func (c *Cart) RemoveMenu(menuID uint) bool {
	item := c.itemForMenu(menuID)
	if item == nil {
		return false
	}
	_, err := c.RemoveItem(item.id)
	return err == nil
}

// CheckOut freezes the cart. It fails on an empty cart.
func (c *Cart) CheckOut() error {
	if err := c.ensureOpen(); err != nil {
		return err
	}
	if len(c.items) == 0 {
		return shared.NewValidationError("cart", "items", "Cart is empty")
	}
	c.checkedOut = true
	c.touch()
	return nil
}

// OwnedBy reports whether the cart is open and belongs to userID.
func (c *Cart) OwnedBy(userID uint) bool {
	return c.userID == userID && !c.checkedOut
}

func (c *Cart) ensureOpen() error {
	if c.checkedOut {
		return shared.NewError(shared.KindCartNotFound, "cart", "")
	}
	return nil
}

// touch runs after a mutation whose total was already checked by totalWith.
func (c *Cart) touch() {
	if total, ok := c.sum(); ok {
		c.totalPrice = total
	}
	c.dirty = true
	c.updatedAt = time.Now()
}

// sum adds up the lines, reporting false when the total does not fit in int64.
func (c *Cart) sum() (int64, bool) {
	var total int64
	for _, item := range c.items {
		line, ok := lineTotal(item.quantity, item.menu.Price())
		if !ok || line > math.MaxInt64-total {
			return 0, false
		}
		total += line
	}
	return total, true
}

// totalWith is the cart total if the line for menuID held quantity. A missing line is
// counted as a new one priced at price.
func (c *Cart) totalWith(menuID uint, price int64, quantity int) (int64, bool) {
	var total int64
	found := false
	for _, item := range c.items {
		q := item.quantity
		if item.menu.ID() == menuID {
			q = quantity
			found = true
		}
		line, ok := lineTotal(q, item.menu.Price())
		if !ok || line > math.MaxInt64-total {
			return 0, false
		}
		total += line
	}
	if !found {
		line, ok := lineTotal(quantity, price)
		if !ok || line > math.MaxInt64-total {
			return 0, false
		}
		total += line
	}
	return total, true
}

func lineTotal(quantity int, price int64) (int64, bool) {
	if quantity < 0 || price < 0 {
		return 0, false
	}
	if quantity == 0 || price == 0 {
		return 0, true
	}
	if int64(quantity) > math.MaxInt64/price {
		return 0, false
	}
	return int64(quantity) * price, true
}

func errQuantityTooLarge() error {
	return shared.NewValidationError("cart", "quantity", "Quantity is too large!")
}

func errTotalTooLarge() error {
	return shared.NewValidationError("cart", "totalPrice", "Cart total is too large!")
}

func (c *Cart) item(id uint) *Item {
	for _, item := range c.items {
		if item.id == id {
			return item
		}
	}
	return nil
}

func (c *Cart) itemForMenu(menuID uint) *Item {
	for _, item := range c.items {
		if item.menu.ID() == menuID {
			return item
		}
	}
	return nil
}

// ============================================================================
// Getters
// ============================================================================

func (c *Cart) ID() uint             { return c.id }
func (c *Cart) UserID() uint         { return c.userID }
func (c *Cart) CheckedOut() bool     { return c.checkedOut }
func (c *Cart) TotalPrice() int64    { return c.totalPrice }
func (c *Cart) CreatedAt() time.Time { return c.createdAt }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }

// Items returns a copy of the line slice.
func (c *Cart) Items() []*Item {
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

func (i *Item) ID() uint         { return i.id }
func (i *Item) CartID() uint     { return i.cartID }
func (i *Item) MenuID() uint     { return i.menu.ID() }
func (i *Item) Menu() *menu.Menu { return i.menu }
func (i *Item) Quantity() int    { return i.quantity }
func (i *Item) Subtotal() int64  { return int64(i.quantity) * i.menu.Price() }
func (i *Item) IsNew() bool      { return i.isNew }
func (i *Item) IsDirty() bool    { return i.dirty }

// ============================================================================
// Persistence support - repository use only
// ============================================================================

func (c *Cart) IsNew() bool   { return c.isNew }
func (c *Cart) IsDirty() bool { return c.dirty }

// RemovedItemIDs lists persisted lines dropped since load.
func (c *Cart) RemovedItemIDs() []uint { return c.removedItems }

// MarkPersisted records generated ids and clears dirty state after a successful Save.
func (c *Cart) MarkPersisted(id uint) {
	c.id = id
	c.isNew = false
	c.dirty = false
	c.removedItems = nil
	for _, item := range c.items {
		item.cartID = id
		item.dirty = false
	}
}

// MarkItemPersisted records the id generated for a newly inserted line.
func (i *Item) MarkItemPersisted(id uint) {
	i.id = id
	i.isNew = false
}

// ReconstructionDTO rebuilds a Cart from storage.
type ReconstructionDTO struct {
	ID         uint
	UserID     uint
	CheckedOut bool
	TotalPrice int64
	Items      []ItemDTO
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ItemDTO struct {
	ID       uint
	Menu     *menu.Menu
	Quantity int
}

// RebuildFromDTO trusts the stored total; use Reconcile to detect drift.
func RebuildFromDTO(dto ReconstructionDTO) *Cart {
	c := &Cart{
		id:         dto.ID,
		userID:     dto.UserID,
		checkedOut: dto.CheckedOut,
		totalPrice: dto.TotalPrice,
		createdAt:  dto.CreatedAt,
		updatedAt:  dto.UpdatedAt,
		items:      make([]*Item, 0, len(dto.Items)),
	}
	for _, it := range dto.Items {
		c.items = append(c.items, &Item{id: it.ID, cartID: dto.ID, menu: it.Menu, quantity: it.Quantity})
	}
	return c
}

// Reconcile recomputes the total from the lines and reports whether it had drifted.
// It fails, leaving the cart untouched, when current prices push the total past int64.
func (c *Cart) Reconcile() (bool, error) {
	total, ok := c.sum()
	if !ok {
		return false, errTotalTooLarge()
	}
	if total == c.totalPrice {
		return false, nil
	}
	c.totalPrice = total
	c.dirty = true
	return true, nil
}

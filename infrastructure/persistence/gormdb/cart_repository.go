package gormdb

import (
	"context"
	"fmt"

	"foodorder/domain/cart"
	"foodorder/domain/shared"
	"foodorder/infrastructure/persistence/gormdb/po"

	"gorm.io/gorm"
)

// CartRepository GORM implementation of cart.Repository
// GORM associations are not used; lines and menus are loaded with explicit IN queries.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Save writes the cart row, then inserts new lines, updates changed ones and deletes
// removed ones, all in one transaction.
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		cartID := c.ID()

		switch {
		case c.IsNew():
			cartPO := po.FromCartDomain(c)
			if err := tx.Create(cartPO).Error; err != nil {
				return translate("cart", shared.KindInternal, err)
			}
			cartID = cartPO.ID
		case c.IsDirty():
			result := tx.Model(&po.CartPO{}).Where("id = ?", cartID).Updates(po.CartColumns(c))
			if result.Error != nil {
				return translate("cart", shared.KindInternal, result.Error)
			}
			if result.RowsAffected == 0 {
				return shared.NewError(shared.KindCartNotFound, "cart", "")
			}
		}

		for _, item := range c.Items() {
			switch {
			case item.IsNew():
				itemPO := po.FromCartItemDomain(cartID, item)
				if err := tx.Create(itemPO).Error; err != nil {
					return translate("cart_item", shared.KindInternal, err)
				}
				item.MarkItemPersisted(itemPO.ID)
			case item.IsDirty():
				err := tx.Model(&po.CartItemPO{}).Where("id = ?", item.ID()).
					Update("quantity", item.Quantity()).Error
				if err != nil {
					return translate("cart_item", shared.KindInternal, err)
				}
			}
		}

		if removed := c.RemovedItemIDs(); len(removed) > 0 {
			if err := tx.Where("id IN ?", removed).Delete(&po.CartItemPO{}).Error; err != nil {
				return translate("cart_item", shared.KindInternal, err)
			}
		}

		c.MarkPersisted(cartID)
		return nil
	})
}

func (r *CartRepository) FindOpenByUser(ctx context.Context, userID uint) (*cart.Cart, error) {
	db := conn(ctx, r.db)
	var cartPO po.CartPO
	err := locking(ctx, db).Where("user_id = ? AND status = ?", userID, false).First(&cartPO).Error
	if err != nil {
		return nil, translate("cart", shared.KindCartNotFound, err)
	}
	return r.hydrateOne(db, cartPO)
}

func (r *CartRepository) FindOpen(ctx context.Context, cartID, userID uint) (*cart.Cart, error) {
	db := conn(ctx, r.db)
	var cartPO po.CartPO
	err := locking(ctx, db).Where("id = ? AND user_id = ? AND status = ?", cartID, userID, false).First(&cartPO).Error
	if err != nil {
		return nil, translate("cart", shared.KindCartNotFound, err)
	}
	return r.hydrateOne(db, cartPO)
}

func (r *CartRepository) FindByItemID(ctx context.Context, itemID uint) (*cart.Cart, error) {
	db := conn(ctx, r.db)
	var itemPO po.CartItemPO
	if err := db.First(&itemPO, "id = ?", itemID).Error; err != nil {
		return nil, translate("cart_item", shared.KindItemNotFound, err)
	}

	var cartPO po.CartPO
	if err := locking(ctx, db).First(&cartPO, "id = ?", itemPO.CartID).Error; err != nil {
		return nil, translate("cart", shared.KindCartNotFound, err)
	}
	return r.hydrateOne(db, cartPO)
}

func (r *CartRepository) FindOpenByMenu(ctx context.Context, menuID uint) ([]*cart.Cart, error) {
	db := conn(ctx, r.db)
	var cartPOs []po.CartPO
	err := locking(ctx, db).
		Where("status = ? AND id IN (?)", false,
			db.Model(&po.CartItemPO{}).Select("cart_id").Where("menu_id = ?", menuID)).
		Order("id ASC").
		Find(&cartPOs).Error
	if err != nil {
		return nil, translate("cart", shared.KindInternal, err)
	}
	return r.hydrate(db, cartPOs)
}

func (r *CartRepository) ListOpenByUser(ctx context.Context, userID uint) ([]*cart.Cart, error) {
	db := conn(ctx, r.db)
	var cartPOs []po.CartPO
	err := db.Where("user_id = ? AND status = ?", userID, false).Order("id ASC").Find(&cartPOs).Error
	if err != nil {
		return nil, translate("cart", shared.KindInternal, err)
	}
	return r.hydrate(db, cartPOs)
}

func (r *CartRepository) hydrateOne(db *gorm.DB, cartPO po.CartPO) (*cart.Cart, error) {
	carts, err := r.hydrate(db, []po.CartPO{cartPO})
	if err != nil {
		return nil, err
	}
	return carts[0], nil
}

// hydrate loads the lines of every cart and the menus they reference in two queries.
func (r *CartRepository) hydrate(db *gorm.DB, cartPOs []po.CartPO) ([]*cart.Cart, error) {
	if len(cartPOs) == 0 {
		return []*cart.Cart{}, nil
	}

	cartIDs := make([]uint, len(cartPOs))
	for i, c := range cartPOs {
		cartIDs[i] = c.ID
	}

	var itemPOs []po.CartItemPO
	if err := db.Where("cart_id IN ?", cartIDs).Order("id ASC").Find(&itemPOs).Error; err != nil {
		return nil, translate("cart_item", shared.KindInternal, err)
	}

	menuIDs := make([]uint, len(itemPOs))
	byCart := make(map[uint][]po.CartItemPO, len(cartPOs))
	for i, it := range itemPOs {
		menuIDs[i] = it.MenuID
		byCart[it.CartID] = append(byCart[it.CartID], it)
	}

	menus, err := findMenus(db, menuIDs)
	if err != nil {
		return nil, err
	}
	for _, it := range itemPOs {
		if _, ok := menus[it.MenuID]; !ok {
			return nil, shared.Wrap(shared.KindInternal, "cart_item",
				fmt.Errorf("cart item %d references missing menu %d", it.ID, it.MenuID))
		}
	}

	carts := make([]*cart.Cart, len(cartPOs))
	for i := range cartPOs {
		carts[i] = cartPOs[i].ToDomain(byCart[cartPOs[i].ID], menus)
	}
	return carts, nil
}

var _ cart.Repository = (*CartRepository)(nil)

package gormdb

import (
	"context"

	"foodorder/domain/order"
	"foodorder/domain/shared"
	"foodorder/infrastructure/persistence/gormdb/po"

	"gorm.io/gorm"
)

// OrderRepository GORM implementation of order.Repository
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Save inserts the order row and its items. When called within UoW.Execute() it uses
// the transaction from context, otherwise it opens its own.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if o.ID() != 0 {
		return shared.NewError(shared.KindInternal, "order", "orders are immutable once placed")
	}
	orderPO, itemPOs := po.FromOrderDomain(o)

	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Create(orderPO).Error; err != nil {
			return translate("order", shared.KindInternal, err)
		}
		for i := range itemPOs {
			itemPOs[i].OrderID = orderPO.ID
		}
		if len(itemPOs) > 0 {
			if err := tx.Create(&itemPOs).Error; err != nil {
				return translate("order_item", shared.KindInternal, err)
			}
		}

		itemIDs := make([]uint, len(itemPOs))
		for i := range itemPOs {
			itemIDs[i] = itemPOs[i].ID
		}
		o.MarkPersisted(orderPO.ID, itemIDs)
		return nil
	})
}

// ListByUser Find order list by user ID, newest first
func (r *OrderRepository) ListByUser(ctx context.Context, userID uint) ([]*order.Order, error) {
	db := conn(ctx, r.db)
	var orderPOs []po.OrderPO
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, translate("order", shared.KindInternal, err)
	}
	if len(orderPOs) == 0 {
		return []*order.Order{}, nil
	}

	orderIDs := make([]uint, len(orderPOs))
	for i, o := range orderPOs {
		orderIDs[i] = o.ID
	}

	// Batch query order items
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id IN ?", orderIDs).Order("id ASC").Find(&itemPOs).Error; err != nil {
		return nil, translate("order_item", shared.KindInternal, err)
	}
	byOrder := make(map[uint][]po.OrderItemPO, len(orderPOs))
	menuIDs := make([]uint, len(itemPOs))
	for i, it := range itemPOs {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
		menuIDs[i] = it.MenuID
	}

	menus, err := findMenus(db, menuIDs)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		orders[i] = orderPOs[i].ToDomain(byOrder[orderPOs[i].ID], menus)
	}
	return orders, nil
}

var _ order.Repository = (*OrderRepository)(nil)

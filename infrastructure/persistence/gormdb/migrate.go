package gormdb

import (
	"foodorder/infrastructure/persistence/gormdb/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the repositories use.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&po.UserPO{},
		&po.ProfilePO{},
		&po.MenuPO{},
		&po.CartPO{},
		&po.CartItemPO{},
		&po.OrderPO{},
		&po.OrderItemPO{},
	)
}

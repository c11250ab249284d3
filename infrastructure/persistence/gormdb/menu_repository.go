package gormdb

import (
	"context"

	"foodorder/domain/menu"
	"foodorder/domain/shared"
	"foodorder/infrastructure/persistence/gormdb/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MenuRepository GORM implementation of menu.Repository
type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

var sortColumns = map[menu.SortField]string{
	menu.SortByID:        "id",
	menu.SortByName:      "name",
	menu.SortByPrice:     "price",
	menu.SortByCreatedAt: "created_at",
}

func (r *MenuRepository) Save(ctx context.Context, m *menu.Menu) error {
	menuPO := po.FromMenuDomain(m)
	db := conn(ctx, r.db)

	if m.ID() == 0 {
		if err := db.Create(menuPO).Error; err != nil {
			return translate("menu", shared.KindInternal, err)
		}
		m.SetID(menuPO.ID)
		return nil
	}

	result := db.Model(&po.MenuPO{}).Where("id = ?", m.ID()).Updates(map[string]interface{}{
		"name":       menuPO.Name,
		"price":      menuPO.Price,
		"image_url":  menuPO.ImageURL,
		"updated_at": menuPO.UpdatedAt,
	})
	if result.Error != nil {
		return translate("menu", shared.KindInternal, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewError(shared.KindMenuNotFound, "menu", "")
	}
	return nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint) (*menu.Menu, error) {
	var menuPO po.MenuPO
	if err := conn(ctx, r.db).First(&menuPO, "id = ?", id).Error; err != nil {
		return nil, translate("menu", shared.KindMenuNotFound, err)
	}
	return menuPO.ToDomain(), nil
}

func (r *MenuRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*menu.Menu, error) {
	return findMenus(conn(ctx, r.db), ids)
}

// findMenus batch-loads menus for cart and order lines.
func findMenus(db *gorm.DB, ids []uint) (map[uint]*menu.Menu, error) {
	out := make(map[uint]*menu.Menu, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var menuPOs []po.MenuPO
	if err := db.Where("id IN ?", uniqueIDs(ids)).Find(&menuPOs).Error; err != nil {
		return nil, translate("menu", shared.KindInternal, err)
	}
	for i := range menuPOs {
		out[menuPOs[i].ID] = menuPOs[i].ToDomain()
	}
	return out, nil
}

func (r *MenuRepository) List(ctx context.Context, q menu.Query) ([]*menu.Menu, int64, error) {
	db := conn(ctx, r.db)
	filtered := func() *gorm.DB {
		tx := db.Model(&po.MenuPO{})
		if q.MaxPrice != nil {
			tx = tx.Where("price <= ?", *q.MaxPrice)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, translate("menu", shared.KindInternal, err)
	}

	tx := filtered()
	if col, ok := sortColumns[q.Sort]; ok {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: q.Descending})
	}
	// id breaks ties so pages never overlap
	if q.Sort != menu.SortByID {
		tx = tx.Order("id ASC")
	}

	var menuPOs []po.MenuPO
	if err := tx.Limit(q.PageSize).Offset(q.Offset()).Find(&menuPOs).Error; err != nil {
		return nil, 0, translate("menu", shared.KindInternal, err)
	}

	menus := make([]*menu.Menu, len(menuPOs))
	for i := range menuPOs {
		menus[i] = menuPOs[i].ToDomain()
	}
	return menus, total, nil
}

func (r *MenuRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&po.MenuPO{}, id)
	if result.Error != nil {
		return translate("menu", shared.KindInternal, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewError(shared.KindMenuNotFound, "menu", "")
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

var _ menu.Repository = (*MenuRepository)(nil)

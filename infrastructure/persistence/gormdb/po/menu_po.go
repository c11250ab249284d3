package po

import (
	"time"

	"foodorder/domain/menu"
)

// MenuPO Menu persistence object
// Note: Only used for database mapping, does not contain any business logic
type MenuPO struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	Price     int64     `gorm:"not null;index"`
	ImageURL  string    `gorm:"column:image_url;size:1024;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (MenuPO) TableName() string {
	return "menus"
}

func FromMenuDomain(m *menu.Menu) *MenuPO {
	return &MenuPO{
		ID:        m.ID(),
		Name:      m.Name(),
		Price:     m.Price(),
		ImageURL:  m.ImageURL(),
		CreatedAt: m.CreatedAt(),
		UpdatedAt: m.UpdatedAt(),
	}
}

func (p *MenuPO) ToDomain() *menu.Menu {
	return menu.RebuildFromDTO(menu.ReconstructionDTO{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
}

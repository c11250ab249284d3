/*
Package menu is the catalog: named, priced dishes that carts and orders reference.
*/
package menu

import (
	"strings"
	"time"

	"foodorder/domain/shared"
)

// Menu is a catalog entry. Prices are whole currency units.
type Menu struct {
	id        uint
	name      string
	price     int64
	imageURL  string
	createdAt time.Time
	updatedAt time.Time
}

// NewMenu validates and creates an unsaved menu.
func NewMenu(name string, price int64, imageURL string) (*Menu, error) {
	m := &Menu{}
	if err := m.apply(name, price, imageURL); err != nil {
		return nil, err
	}
	now := time.Now()
	m.createdAt = now
	m.updatedAt = now
	return m, nil
}

// Update replaces every editable field, with the same rules as NewMenu.
func (m *Menu) Update(name string, price int64, imageURL string) error {
	if err := m.apply(name, price, imageURL); err != nil {
		return err
	}
	m.updatedAt = time.Now()
	return nil
}

func (m *Menu) apply(name string, price int64, imageURL string) error {
	name = strings.TrimSpace(name)
	imageURL = strings.TrimSpace(imageURL)
	if name == "" {
		return shared.NewValidationError("menu", "name", "Menu's name is required!")
	}
	if price <= 0 {
		return shared.NewValidationError("menu", "price", "Price must be a positive number!")
	}
	if imageURL == "" {
		return shared.NewValidationError("menu", "imageUrl", "Menu's image url is required!")
	}
	m.name = name
	m.price = price
	m.imageURL = imageURL
	return nil
}

// SetID is called by the repository once the row has been inserted.
func (m *Menu) SetID(id uint) { m.id = id }

func (m *Menu) ID() uint             { return m.id }
func (m *Menu) Name() string         { return m.name }
func (m *Menu) Price() int64         { return m.price }
func (m *Menu) ImageURL() string     { return m.imageURL }
func (m *Menu) CreatedAt() time.Time { return m.createdAt }
func (m *Menu) UpdatedAt() time.Time { return m.updatedAt }

// ReconstructionDTO rebuilds a Menu from storage. Repository use only.
type ReconstructionDTO struct {
	ID        uint
	Name      string
	Price     int64
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *Menu {
	return &Menu{
		id:        dto.ID,
		name:      dto.Name,
		price:     dto.Price,
		imageURL:  dto.ImageURL,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}

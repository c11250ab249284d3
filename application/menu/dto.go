package menu

import (
	"time"

	"foodorder/domain/menu"
)

// CreateMenuRequest is the admin payload for a new catalog entry. Field rules live in
// the domain so clients get its messages.
type CreateMenuRequest struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl"`
}

type UpdateMenuRequest = CreateMenuRequest

// MenuResponse is also nested inside cart and order lines.
type MenuResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PageResponse is one page of the catalog.
type PageResponse struct {
	Menus        []MenuResponse `json:"menus"`
	CurrentPage  int            `json:"currentPage"`
	PageSize     int            `json:"pageSize"`
	TotalCount   int64          `json:"totalCount"`
	TotalPages   int            `json:"totalPages"`
	NextPage     *int           `json:"nextPage,omitempty"`
	PreviousPage *int           `json:"previousPage,omitempty"`
}

// ToMenuResponse returns nil for a nil menu (an order line whose menu was removed).
func ToMenuResponse(m *menu.Menu) *MenuResponse {
	if m == nil {
		return nil
	}
	return &MenuResponse{
		ID:        m.ID(),
		Name:      m.Name(),
		Price:     m.Price(),
		ImageURL:  m.ImageURL(),
		CreatedAt: m.CreatedAt(),
		UpdatedAt: m.UpdatedAt(),
	}
}

func toPageResponse(p menu.Page) PageResponse {
	menus := make([]MenuResponse, len(p.Menus))
	for i, m := range p.Menus {
		menus[i] = *ToMenuResponse(m)
	}
	return PageResponse{
		Menus:        menus,
		CurrentPage:  p.CurrentPage,
		PageSize:     p.PageSize,
		TotalCount:   p.TotalCount,
		TotalPages:   p.TotalPages,
		NextPage:     p.NextPage,
		PreviousPage: p.PreviousPage,
	}
}

package menu

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"foodorder/domain/shared"
)

const (
	DefaultPageSize   = 5
	DefaultPageNumber = 1
	MaxPageSize       = 100
)

// SortField is a whitelisted column for catalog ordering.
type SortField string

const (
	SortByID        SortField = "id"
	SortByName      SortField = "name"
	SortByPrice     SortField = "price"
	SortByCreatedAt SortField = "createdAt"
)

func (f SortField) valid() bool {
	switch f {
	case SortByID, SortByName, SortByPrice, SortByCreatedAt:
		return true
	}
	return false
}

// Query is a normalized catalog listing request.
type Query struct {
	MaxPrice   *int64
	Sort       SortField
	Descending bool
	PageSize   int
	PageNumber int
}

// RawQuery holds the listing parameters as they arrive on the wire; empty means absent.
type RawQuery struct {
	MaxPrice   string
	Sort       string
	PageSize   string
	PageNumber string
}

// ParseQuery validates raw parameters and fills in the paging defaults.
func ParseQuery(raw RawQuery) (Query, error) {
	q := Query{PageSize: DefaultPageSize, PageNumber: DefaultPageNumber}

	if raw.MaxPrice != "" {
		v, err := strconv.ParseInt(raw.MaxPrice, 10, 64)
		if err != nil || v < 0 {
			return Query{}, shared.NewValidationError("menu", "maxPrice", "maxPrice must be a non-negative integer!")
		}
		q.MaxPrice = &v
	}

	if raw.Sort != "" {
		field := raw.Sort
		if strings.HasPrefix(field, "-") {
			q.Descending = true
			field = field[1:]
		}
		q.Sort = SortField(field)
		if !q.Sort.valid() {
			return Query{}, shared.NewValidationError("menu", "sort", fmt.Sprintf("Cannot sort menus by %q!", field))
		}
	}

	if raw.PageSize != "" {
		v, err := strconv.Atoi(raw.PageSize)
		if err != nil || v < 1 || v > MaxPageSize {
			return Query{}, shared.NewValidationError("menu", "page[size]", fmt.Sprintf("page[size] must be between 1 and %d!", MaxPageSize))
		}
		q.PageSize = v
	}

	if raw.PageNumber != "" {
		v, err := strconv.Atoi(raw.PageNumber)
		if err != nil || v < 1 {
			return Query{}, shared.NewValidationError("menu", "page[number]", "page[number] must be a positive integer!")
		}
		q.PageNumber = v
	}

	return q, nil
}

func (q Query) Offset() int {
	return (q.PageNumber - 1) * q.PageSize
}

// Signature is the canonical form of q, stable across parameter order and defaults.
func (q Query) Signature() string {
	v := url.Values{}
	if q.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatInt(*q.MaxPrice, 10))
	}
	if q.Sort != "" {
		s := string(q.Sort)
		if q.Descending {
			s = "-" + s
		}
		v.Set("sort", s)
	}
	v.Set("page[size]", strconv.Itoa(q.PageSize))
	v.Set("page[number]", strconv.Itoa(q.PageNumber))

	// url.Values.Encode sorts by key but escapes brackets; keep them readable in cache keys.
	return strings.NewReplacer("%5B", "[", "%5D", "]").Replace(v.Encode())
}

// Page is one slice of the catalog with its paging metadata.
type Page struct {
	Menus        []*Menu
	CurrentPage  int
	PageSize     int
	TotalCount   int64
	TotalPages   int
	NextPage     *int
	PreviousPage *int
}

func NewPage(menus []*Menu, q Query, total int64) Page {
	p := Page{
		Menus:       menus,
		CurrentPage: q.PageNumber,
		PageSize:    q.PageSize,
		TotalCount:  total,
		TotalPages:  int((total + int64(q.PageSize) - 1) / int64(q.PageSize)),
	}
	if p.CurrentPage < p.TotalPages {
		next := p.CurrentPage + 1
		p.NextPage = &next
	}
	if p.CurrentPage > 1 {
		prev := p.CurrentPage - 1
		p.PreviousPage = &prev
	}
	return p
}

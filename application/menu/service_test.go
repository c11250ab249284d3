package menu

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"foodorder/domain/cart"
	"foodorder/domain/menu"
	"foodorder/domain/shared"
	"foodorder/infrastructure/persistence/gormdb"
	"foodorder/infrastructure/persistence/gormdb/gormdbtest"
	"foodorder/infrastructure/persistence/retry"
	"foodorder/pkg/cache"
)

type fixture struct {
	svc   *ApplicationService
	menus *gormdb.MenuRepository
	carts *gormdb.CartRepository
	cache *cache.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := gormdbtest.New(t)
	f := &fixture{
		menus: gormdb.NewMenuRepository(db),
		carts: gormdb.NewCartRepository(db),
		cache: cache.NewMemory(),
	}
	f.svc = NewApplicationService(f.menus, f.carts, gormdb.NewUnitOfWork(db, retry.DefaultConfig), f.cache, 0)
	return f
}

func (f *fixture) create(t *testing.T, name string, price int64) *MenuResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), CreateMenuRequest{Name: name, Price: price, ImageURL: name + ".png"})
	if err != nil {
		t.Fatalf("Create(%s) error = %v", name, err)
	}
	return resp
}

func decodePage(t *testing.T, data json.RawMessage) PageResponse {
	t.Helper()
	var page PageResponse
	if err := json.Unmarshal(data, &page); err != nil {
		t.Fatalf("unmarshal page: %v", err)
	}
	return page
}

func TestListPaginates(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"A", "B", "C", "D", "E", "F"} {
		f.create(t, name, 10)
	}

	data, err := f.svc.List(context.Background(), menu.RawQuery{PageSize: "3", PageNumber: "2"})
	if err != nil {
		t.Fatal(err)
	}
	page := decodePage(t, data)
	if len(page.Menus) != 3 || page.TotalCount != 6 || page.TotalPages != 2 || page.CurrentPage != 2 {
		t.Fatalf("page = %+v", page)
	}
	if page.NextPage != nil || page.PreviousPage == nil || *page.PreviousPage != 1 {
		t.Fatalf("next = %v previous = %v", page.NextPage, page.PreviousPage)
	}
	if page.Menus[0].Name != "D" {
		t.Errorf("first menu on page 2 = %q, want D", page.Menus[0].Name)
	}
}

func TestListServedFromCacheUntilMutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.create(t, "Nasi Goreng", 25000)

	before, err := f.svc.List(ctx, menu.RawQuery{})
	if err != nil {
		t.Fatal(err)
	}

	// A write that bypasses the service leaves the cached page in place.
	m, _ := menu.NewMenu("Sate", 30000, "sate.png")
	if err := f.menus.Save(ctx, m); err != nil {
		t.Fatal(err)
	}
	cached, err := f.svc.List(ctx, menu.RawQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if string(cached) != string(before) {
		t.Fatalf("second read was not served from cache:\n%s\n%s", before, cached)
	}

	if _, err := f.svc.Update(ctx, first.ID, UpdateMenuRequest{Name: "Nasi Goreng", Price: 26000, ImageURL: "ng.png"}); err != nil {
		t.Fatal(err)
	}
	after, err := f.svc.List(ctx, menu.RawQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if page := decodePage(t, after); page.TotalCount != 2 {
		t.Fatalf("after update total = %d, want 2", page.TotalCount)
	}
}

func TestListRejectsBadQuery(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.List(context.Background(), menu.RawQuery{PageSize: "zero"})
	if shared.KindOf(err) != shared.KindValidation {
		t.Fatalf("List() error = %v, want validation", err)
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), CreateMenuRequest{Price: 10, ImageURL: "x.png"})
	if shared.KindOf(err) != shared.KindValidation {
		t.Fatalf("Create() error = %v, want validation", err)
	}
}

func TestUpdateRepricesOpenCarts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t, "Bakso", 10)

	m, err := f.menus.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	c := cart.New(7)
	if _, err := c.AddItem(m, 2); err != nil {
		t.Fatal(err)
	}
	if err := f.carts.Save(ctx, c); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Update(ctx, created.ID, UpdateMenuRequest{Name: "Bakso", Price: 15, ImageURL: "bakso.png"}); err != nil {
		t.Fatal(err)
	}

	reloaded, err := f.carts.FindOpenByUser(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.TotalPrice() != 30 {
		t.Errorf("cart total = %d, want 30", reloaded.TotalPrice())
	}
}

func TestUpdateRejectsPriceThatOverflowsOpenCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t, "Bakso", 10)

	m, err := f.menus.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	c := cart.New(7)
	if _, err := c.AddItem(m, 2); err != nil {
		t.Fatal(err)
	}
	if err := f.carts.Save(ctx, c); err != nil {
		t.Fatal(err)
	}

	_, err = f.svc.Update(ctx, created.ID, UpdateMenuRequest{Name: "Bakso", Price: math.MaxInt64, ImageURL: "bakso.png"})
	if shared.KindOf(err) != shared.KindValidation {
		t.Fatalf("Update() error = %v, want validation", err)
	}

	got, err := f.svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Price != 10 {
		t.Errorf("price after rejected update = %d, want 10", got.Price)
	}
	reloaded, err := f.carts.FindOpenByUser(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.TotalPrice() != 20 {
		t.Errorf("cart total = %d, want 20", reloaded.TotalPrice())
	}
}

func TestDeleteDropsMenuFromOpenCarts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keep := f.create(t, "Soto", 12)
	drop := f.create(t, "Rendang", 40)

	menus, err := f.menus.FindByIDs(ctx, []uint{keep.ID, drop.ID})
	if err != nil {
		t.Fatal(err)
	}
	c := cart.New(3)
	if _, err := c.AddItem(menus[keep.ID], 1); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddItem(menus[drop.ID], 2); err != nil {
		t.Fatal(err)
	}
	if err := f.carts.Save(ctx, c); err != nil {
		t.Fatal(err)
	}

	removed, err := f.svc.Delete(ctx, drop.ID)
	if err != nil {
		t.Fatal(err)
	}
	if removed.Name != "Rendang" {
		t.Errorf("removed = %q", removed.Name)
	}

	reloaded, err := f.carts.FindOpenByUser(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Items()) != 1 || reloaded.TotalPrice() != 12 {
		t.Fatalf("cart after delete: items = %d total = %d", len(reloaded.Items()), reloaded.TotalPrice())
	}

	if _, err := f.svc.Get(ctx, drop.ID); !errors.Is(err, shared.ErrMenuNotFound) {
		t.Fatalf("Get() after delete error = %v", err)
	}
	if _, err := f.svc.Delete(ctx, drop.ID); !errors.Is(err, shared.ErrMenuNotFound) {
		t.Fatalf("second Delete() error = %v", err)
	}
}

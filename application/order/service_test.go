package order

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"foodorder/domain/cart"
	"foodorder/domain/menu"
	"foodorder/domain/shared"
	"foodorder/domain/user"
	"foodorder/infrastructure/persistence/gormdb"
	"foodorder/infrastructure/persistence/gormdb/gormdbtest"
	"foodorder/infrastructure/persistence/gormdb/po"
	"foodorder/infrastructure/persistence/retry"
	"foodorder/pkg/cache"

	"gorm.io/gorm"
)

const customer uint = 42

type fixture struct {
	db       *gorm.DB
	svc      *ApplicationService
	menus    *gormdb.MenuRepository
	carts    *gormdb.CartRepository
	profiles *gormdb.ProfileRepository
	cache    *cache.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := gormdbtest.New(t)
	f := &fixture{
		db:       db,
		menus:    gormdb.NewMenuRepository(db),
		carts:    gormdb.NewCartRepository(db),
		profiles: gormdb.NewProfileRepository(db),
		cache:    cache.NewMemory(),
	}
	f.svc = NewApplicationService(
		gormdb.NewOrderRepository(db), f.carts, f.profiles,
		gormdb.NewUnitOfWork(db, retry.DefaultConfig), f.cache, 0,
	)
	return f
}

func (f *fixture) profile(t *testing.T, balance int64) {
	t.Helper()
	p := user.NewProfile(customer)
	if balance > 0 {
		if err := p.Credit(balance); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.profiles.Save(context.Background(), p); err != nil {
		t.Fatal(err)
	}
}

// cartOf opens a cart holding quantity of a menu priced price.
func (f *fixture) cartOf(t *testing.T, price int64, quantity int) *cart.Cart {
	t.Helper()
	ctx := context.Background()
	m, err := menu.NewMenu("Gado Gado", price, "gado.png")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.menus.Save(ctx, m); err != nil {
		t.Fatal(err)
	}
	c := cart.New(customer)
	if _, err := c.AddItem(m, quantity); err != nil {
		t.Fatal(err)
	}
	if err := f.carts.Save(ctx, c); err != nil {
		t.Fatal(err)
	}
	return c
}

func (f *fixture) balance(t *testing.T) int64 {
	t.Helper()
	p, err := f.profiles.FindByUserID(context.Background(), customer)
	if err != nil {
		t.Fatal(err)
	}
	return p.CurrentBalance()
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(model).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func TestCheckoutDebitsBalanceAndClosesCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.profile(t, 500)
	c := f.cartOf(t, 50, 2)

	// Warm both caches so the checkout has something to invalidate.
	if _, err := f.svc.List(ctx, customer); err != nil {
		t.Fatal(err)
	}
	if err := f.cache.Set(ctx, cache.UserKey("carts", "getCarts", customer), []byte("[]"), 0); err != nil {
		t.Fatal(err)
	}

	placed, err := f.svc.Checkout(ctx, customer, c.ID())
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if placed.TotalPrice != 100 || len(placed.OrderItems) != 1 || placed.OrderItems[0].Quantity != 2 {
		t.Fatalf("order = %+v", placed)
	}
	if got := f.balance(t); got != 400 {
		t.Errorf("balance = %d, want 400", got)
	}
	if _, err := f.carts.FindOpenByUser(ctx, customer); !errors.Is(err, shared.ErrCartNotFound) {
		t.Errorf("cart still open: %v", err)
	}

	for _, key := range []string{ListKey(customer), cache.UserKey("carts", "getCarts", customer)} {
		if _, err := f.cache.Get(ctx, key); !errors.Is(err, cache.ErrMiss) {
			t.Errorf("%s survived checkout: %v", key, err)
		}
	}

	data, err := f.svc.List(ctx, customer)
	if err != nil {
		t.Fatal(err)
	}
	var orders []OrderResponse
	if err := json.Unmarshal(data, &orders); err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 || orders[0].ID != placed.ID || orders[0].OrderItems[0].Menu.Name != "Gado Gado" {
		t.Fatalf("orders = %+v", orders)
	}

	if _, err := f.svc.Checkout(ctx, customer, c.ID()); !errors.Is(err, shared.ErrCartNotFound) {
		t.Errorf("second checkout error = %v, want cart not found", err)
	}
}

func TestCheckoutInsufficientBalanceRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.profile(t, 50)
	c := f.cartOf(t, 50, 2)

	_, err := f.svc.Checkout(ctx, customer, c.ID())
	if !errors.Is(err, shared.ErrInsufficientBalance) {
		t.Fatalf("Checkout() error = %v, want insufficient balance", err)
	}

	if n := f.count(t, &po.OrderPO{}); n != 0 {
		t.Errorf("orders = %d, want 0", n)
	}
	if n := f.count(t, &po.OrderItemPO{}); n != 0 {
		t.Errorf("order items = %d, want 0", n)
	}
	if got := f.balance(t); got != 50 {
		t.Errorf("balance = %d, want 50", got)
	}
	open, err := f.carts.FindOpenByUser(ctx, customer)
	if err != nil {
		t.Fatalf("cart closed after failed checkout: %v", err)
	}
	if open.TotalPrice() != 100 {
		t.Errorf("cart total = %d, want 100", open.TotalPrice())
	}
}

func TestCheckoutErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Checkout(ctx, customer, 99); !errors.Is(err, shared.ErrCartNotFound) {
		t.Errorf("missing cart error = %v", err)
	}

	c := f.cartOf(t, 10, 1)
	if _, err := f.svc.Checkout(ctx, customer+1, c.ID()); !errors.Is(err, shared.ErrCartNotFound) {
		t.Errorf("foreign cart error = %v", err)
	}
	if _, err := f.svc.Checkout(ctx, customer, c.ID()); !errors.Is(err, shared.ErrProfileNotFound) {
		t.Errorf("missing profile error = %v", err)
	}
	if n := f.count(t, &po.OrderPO{}); n != 0 {
		t.Errorf("orders = %d after failed checkouts", n)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.profile(t, 100)
	c := cart.New(customer)
	if err := f.carts.Save(ctx, c); err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.Checkout(ctx, customer, c.ID())
	if shared.KindOf(err) != shared.KindValidation {
		t.Fatalf("Checkout() error = %v, want validation", err)
	}
}

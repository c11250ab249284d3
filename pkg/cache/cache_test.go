package cache

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client), mr
}

func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get(missing) err = %v, want ErrMiss", err)
	}
	if err := c.Set(ctx, "carts:getCarts:1", []byte(`[1]`), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "menus:getMenus:x", []byte(`{}`), time.Minute); err != nil {
		t.Fatal(err)
	}
	got, err := c.Get(ctx, "carts:getCarts:1")
	if err != nil || string(got) != `[1]` {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := c.Delete(ctx, "carts:getCarts:1"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, "carts:getCarts:1"); !errors.Is(err, ErrMiss) {
		t.Errorf("after Delete err = %v", err)
	}

	if err := c.FlushAll(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, "menus:getMenus:x"); !errors.Is(err, ErrMiss) {
		t.Errorf("after FlushAll err = %v", err)
	}
	if err := c.Ping(ctx); err != nil {
		t.Errorf("Ping = %v", err)
	}
}

func TestRedisCache(t *testing.T) {
	c, mr := newTestRedis(t)
	exerciseCache(t, c)

	if err := c.Set(context.Background(), "k", []byte("v"), DefaultTTL); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("k"); ttl != DefaultTTL {
		t.Errorf("TTL = %v, want %v", ttl, DefaultTTL)
	}
	mr.FastForward(DefaultTTL)
	if _, err := c.Get(context.Background(), "k"); !errors.Is(err, ErrMiss) {
		t.Errorf("expired key err = %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	exerciseCache(t, NewMemory())
}

func TestMemoryCacheExpiry(t *testing.T) {
	m := NewMemory()
	now := time.Unix(1000, 0)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v"), DefaultTTL); err != nil {
		t.Fatal(err)
	}
	now = now.Add(DefaultTTL - time.Second)
	if _, err := m.Get(ctx, "k"); err != nil {
		t.Fatalf("before expiry err = %v", err)
	}
	now = now.Add(time.Second)
	if _, err := m.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Errorf("at expiry err = %v", err)
	}
}

func TestMemoryExpiryKeepsEntryReplacedDuringGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	now := time.Unix(1000, 0)
	m.now = func() time.Time { return now }
	if err := m.Set(ctx, "k", []byte("old"), time.Minute); err != nil {
		t.Fatal(err)
	}
	now = now.Add(2 * time.Minute)

	// The clock is read between the read and write locks; replace the key there.
	replaced := false
	m.now = func() time.Time {
		if !replaced {
			replaced = true
			if err := m.Set(ctx, "k", []byte("fresh"), time.Hour); err != nil {
				t.Fatal(err)
			}
		}
		return now
	}
	if _, err := m.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expired read err = %v", err)
	}

	got, err := m.Get(ctx, "k")
	if err != nil || string(got) != "fresh" {
		t.Fatalf("Get() = %q, %v; want the replacing value", got, err)
	}
}

func TestRememberServesCachedBytesVerbatim(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	calls := 0
	compute := func(context.Context) (interface{}, error) {
		calls++
		return map[string]int{"total": 20}, nil
	}

	first, hit, err := Remember(ctx, c, "carts:getCarts:1", DefaultTTL, compute)
	if err != nil || hit {
		t.Fatalf("first: hit = %v err = %v", hit, err)
	}
	second, hit, err := Remember(ctx, c, "carts:getCarts:1", DefaultTTL, compute)
	if err != nil || !hit {
		t.Fatalf("second: hit = %v err = %v", hit, err)
	}
	if calls != 1 || !bytes.Equal(first, second) {
		t.Errorf("calls = %d first = %s second = %s", calls, first, second)
	}
}

type brokenCache struct{ *Memory }

func (brokenCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func TestRememberDegradesWhenCacheFails(t *testing.T) {
	data, hit, err := Remember(context.Background(), brokenCache{NewMemory()}, "k", DefaultTTL, func(context.Context) (interface{}, error) {
		return []int{1, 2}, nil
	})
	if err != nil || hit || string(data) != "[1,2]" {
		t.Errorf("data = %s hit = %v err = %v", data, hit, err)
	}
}

func TestRememberPropagatesComputeErrors(t *testing.T) {
	c := NewMemory()
	boom := errors.New("db down")
	_, _, err := Remember(context.Background(), c, "k", DefaultTTL, func(context.Context) (interface{}, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if _, err := c.Get(context.Background(), "k"); !errors.Is(err, ErrMiss) {
		t.Error("failed compute must not populate the cache")
	}
}

func TestKeys(t *testing.T) {
	if got := UserKey("carts", "getCarts", 42); got != "carts:getCarts:42" {
		t.Errorf("UserKey = %q", got)
	}
	if got := Key("menus", "getMenus", "page[number]=1&page[size]=5"); got != "menus:getMenus:page[number]=1&page[size]=5" {
		t.Errorf("Key = %q", got)
	}
}

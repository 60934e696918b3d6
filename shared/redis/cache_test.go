package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

type testView struct {
	ID   int64  `json:"id"`
	Kode string `json:"kode"`
}

func newTestCache(t *testing.T, ttl time.Duration) (*ViewCache[testView], *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewViewCache[testView](client, ttl), mr
}

func TestViewCacheSetGetExpires(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "transaksi:view:42", &testView{ID: 42, Kode: "TRX-20261019-ABCDEF"})
	got, ok := cache.Get(ctx, "transaksi:view:42")
	if !ok || got.Kode != "TRX-20261019-ABCDEF" {
		t.Fatalf("expected cached view, got %+v %v", got, ok)
	}
	if ttl := mr.TTL("transaksi:view:42"); ttl != time.Minute {
		t.Errorf("expected 1m ttl, got %s", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok := cache.Get(ctx, "transaksi:view:42"); ok {
		t.Error("expected entry to expire")
	}
}

func TestViewCacheDefaultTTL(t *testing.T) {
	cache, mr := newTestCache(t, 0)
	cache.Set(context.Background(), "k", &testView{ID: 1})
	if ttl := mr.TTL("k"); ttl != DefaultViewTTL {
		t.Errorf("expected default ttl %s, got %s", DefaultViewTTL, ttl)
	}
}

func TestViewCacheStaleWriteBackAfterInvalidate(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()
	key := "transaksi:view:42"

	// A reader loaded the row, the delete committed and invalidated, then the
	// reader tries to write its copy back.
	stale := &testView{ID: 42}
	cache.Invalidate(ctx, key)
	cache.SetIfValid(ctx, key, stale)

	if _, ok := cache.Get(ctx, key); ok {
		t.Fatal("invalidated view must not be written back")
	}
}

func TestViewCacheInvalidateDropsExisting(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()
	key := "transaksi:view:42"

	cache.SetIfValid(ctx, key, &testView{ID: 42})
	if _, ok := cache.Get(ctx, key); !ok {
		t.Fatal("expected write-back without prior invalidation")
	}

	cache.Invalidate(ctx, key)
	if _, ok := cache.Get(ctx, key); ok {
		t.Fatal("expected entry to be dropped")
	}

	mr.FastForward(2 * time.Minute)
	cache.SetIfValid(ctx, key, &testView{ID: 42})
	if _, ok := cache.Get(ctx, key); !ok {
		t.Error("expected write-back once the invalidation marker expired")
	}
}

func TestViewCacheNilClient(t *testing.T) {
	cache := NewViewCache[testView](nil, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "k", &testView{ID: 1})
	cache.SetIfValid(ctx, "k", &testView{ID: 1})
	cache.Invalidate(ctx, "k")
	if _, ok := cache.Get(ctx, "k"); ok {
		t.Error("nil client must always miss")
	}
}

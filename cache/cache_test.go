package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(0)

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss on empty cache, got %v", err)
	}

	value := []byte(`{"noData":false}`)
	if err := c.Set(ctx, "k", value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value[0] = 'X' // caller reuse must not reach the cache

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"noData":false}` {
		t.Errorf("unexpected value %q", got)
	}
}

func TestMemoryExpires(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)
	now := time.Date(2015, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"))

	now = now.Add(59 * time.Second)
	if _, err := c.Get(ctx, "k"); err != nil {
		t.Errorf("entry should still be live, got %v", err)
	}

	now = now.Add(time.Second)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss after TTL, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be evicted, %d left", c.Len())
	}
}

func TestMemorySweepsExpiredOnSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySize(time.Minute, 100000)
	now := time.Date(2015, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for i := 0; i < 10000; i++ {
		_ = c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"))
	}
	if c.Len() != 10000 {
		t.Fatalf("expected 10000 live entries, got %d", c.Len())
	}

	now = now.Add(2 * time.Minute)
	_ = c.Set(ctx, "fresh", []byte("v"))
	if c.Len() != 1 {
		t.Errorf("expired entries should be swept on Set, %d left", c.Len())
	}
}

func TestMemoryEvictsWhenFull(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySize(0, 2)

	_ = c.Set(ctx, "a", []byte("1"))
	_ = c.Set(ctx, "b", []byte("2"))
	_ = c.Set(ctx, "a", []byte("3")) // overwrite does not evict
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}

	_ = c.Set(ctx, "c", []byte("4"))
	if c.Len() != 2 {
		t.Errorf("cap should hold at 2, got %d", c.Len())
	}
	if _, err := c.Get(ctx, "b"); !errors.Is(err, ErrMiss) {
		t.Errorf("earliest inserted entry should be evicted, got %v", err)
	}
	if v, err := c.Get(ctx, "a"); err != nil || string(v) != "3" {
		t.Errorf("expected a=3 to survive, got %q, %v", v, err)
	}
}

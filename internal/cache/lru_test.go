package cache

import (
	"context"
	"testing"
	"time"
)

func TestLRUCacheGetSet(t *testing.T) {
	c := NewLRUCache[float64](4, time.Minute)
	if _, ok := c.Get("fixed"); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Set("fixed", 1100)
	got, ok := c.Get("fixed")
	if !ok || got != 1100 {
		t.Fatalf("expected 1100, got %v (ok=%v)", got, ok)
	}
	c.Delete("fixed")
	if _, ok := c.Get("fixed"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestLRUCacheTTL(t *testing.T) {
	c := NewLRUCache[int](4, 10*time.Millisecond)
	c.Set("k", 1)
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected expired entry to miss")
	}
	if c.Size() != 0 {
		t.Fatalf("expected expired entry evicted, size=%d", c.Size())
	}
}

func TestLRUCacheCleanExpired(t *testing.T) {
	c := NewLRUCache[int](4, 10*time.Millisecond)
	c.Set("stale1", 1)
	c.Set("stale2", 2)
	time.Sleep(20 * time.Millisecond)
	c.Set("fresh", 3)

	if removed := c.CleanExpired(); removed != 2 {
		t.Fatalf("expected 2 evictions, got %d", removed)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Fatal("expected fresh entry retained")
	}
}

func TestLRUCacheJanitor(t *testing.T) {
	c := NewLRUCache[int](4, 10*time.Millisecond)
	c.Set("k", 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Janitor(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(time.Second)
	for c.Size() != 0 {
		select {
		case <-deadline:
			t.Fatal("janitor never evicted the expired entry")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop on context cancel")
	}
}

func TestLRUCacheEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a, making b the eviction candidate
	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a retained")
	}
}

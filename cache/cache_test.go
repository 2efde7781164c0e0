package cache

import (
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := New(10, time.Minute)
	c.Set(Key("https://example.com"), "verdict")

	got, ok := c.Get(Key("https://example.com"))
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got != "verdict" {
		t.Errorf("unexpected cached value: %v", got)
	}
}

func TestCache_MissOnUnknownKey(t *testing.T) {
	c := New(10, time.Minute)
	if _, ok := c.Get(Key("https://missing.example.com")); ok {
		t.Error("expected a miss for an unknown key")
	}
}

func TestCache_ZeroTTLDisables(t *testing.T) {
	c := New(10, 0)
	c.Set(Key("https://example.com"), "verdict")
	if _, ok := c.Get(Key("https://example.com")); ok {
		t.Error("zero TTL should disable caching entirely")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New(10, 10*time.Millisecond)
	c.Set(Key("https://example.com"), "verdict")

	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get(Key("https://example.com")); ok {
		t.Error("expected entry to expire")
	}
}

func TestCache_CapacityEviction(t *testing.T) {
	c := New(2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	c.mu.RLock()
	size := len(c.store)
	c.mu.RUnlock()
	if size > 2 {
		t.Errorf("cache exceeded capacity: %d entries", size)
	}
}

func TestCache_OverwriteAtCapacityKeepsOthers(t *testing.T) {
	c := New(2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	// Overwriting an existing key does not grow the store, so nothing
	// should be evicted for it.
	c.Set("a", 10)

	got, ok := c.Get("a")
	if !ok || got != 10 {
		t.Errorf("expected overwritten value 10, got %v (hit=%v)", got, ok)
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("overwrite at capacity evicted an unrelated entry")
	}
}

func TestKey_Deterministic(t *testing.T) {
	if Key("https://example.com") != Key("https://example.com") {
		t.Error("identical URLs must produce identical keys")
	}
	if Key("https://example.com") == Key("https://example.org") {
		t.Error("different URLs should produce different keys")
	}
}

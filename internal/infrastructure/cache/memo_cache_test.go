package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/doeshing/jarvis-go/internal/domain"
)

func TestMemoCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewMemoCache(2, 0)
	c.Set("a", domain.ChatRecord("a"))
	c.Set("b", domain.ChatRecord("b"))
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a cached")
	}
	c.Set("c", domain.ChatRecord("c"))

	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a was recently used and should remain")
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
}

func TestMemoCacheExpiresEntries(t *testing.T) {
	c := NewMemoCache(10, time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("hello", domain.ChatRecord("hello"))
	now = now.Add(30 * time.Second)
	if _, ok := c.Get("hello"); !ok {
		t.Fatal("entry should still be fresh")
	}
	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("hello"); ok {
		t.Fatal("entry should have expired")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry not removed, Len() = %d", c.Len())
	}
}

func TestMemoCacheReturnsIdenticalRecord(t *testing.T) {
	c := NewMemoCache(0, 0)
	rec := domain.NewIntentRecord(domain.IntentWebBrowse, domain.ActionWebSearch, map[string]any{domain.ParamSearchQuery: "go"})
	c.Set("search go", rec)
	got, ok := c.Get("search go")
	if !ok || !got.Equal(rec) {
		t.Fatalf("Get() = %+v, %v", got, ok)
	}
	if _, ok := c.Get(""); ok {
		t.Fatal("empty key should never hit")
	}
}

func TestMemoCacheDefaultCapacity(t *testing.T) {
	c := NewMemoCache(0, 0)
	for i := 0; i < 80; i++ {
		c.Set(fmt.Sprintf("cmd %d", i), domain.ChatRecord("x"))
	}
	if c.Len() != domain.DefaultClassifierCacheSize {
		t.Fatalf("Len() = %d, want %d", c.Len(), domain.DefaultClassifierCacheSize)
	}
	c.Clear()
	if c.Len() != 0 {
		t.Fatal("Clear did not empty cache")
	}
}

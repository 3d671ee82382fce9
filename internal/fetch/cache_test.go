package fetch

import (
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	c := NewCache(t.TempDir(), time.Minute)

	if _, ok := c.Get("https://example.com/page"); ok {
		t.Fatal("expected miss on empty cache")
	}

	if err := c.Set("https://example.com/page", "<html>body</html>"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	body, ok := c.Get("https://example.com/page")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if body != "<html>body</html>" {
		t.Errorf("Get returned %q", body)
	}

	// A different URL maps to a different entry.
	if _, ok := c.Get("https://example.com/other"); ok {
		t.Error("expected miss for a different URL")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(t.TempDir(), 10*time.Millisecond)

	if err := c.Set("https://example.com/page", "body"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("https://example.com/page"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestCacheCreatesDir(t *testing.T) {
	dir := t.TempDir() + "/nested/cache"
	c := NewCache(dir, time.Minute)

	if err := c.Set("https://example.com", "body"); err != nil {
		t.Fatalf("Set should create the cache dir: %v", err)
	}
	if _, ok := c.Get("https://example.com"); !ok {
		t.Error("expected hit after Set in fresh dir")
	}
}

package scraper

import (
	"path/filepath"
	"testing"
)

func TestSQLiteCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	cache, err := OpenCache(dir)
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	defer cache.Close()

	if cache.Path() != filepath.Join(dir, CacheFile) {
		t.Errorf("Path() = %q", cache.Path())
	}

	if _, ok := cache.Get("https://peps.python.org/"); ok {
		t.Error("Get() on empty cache returned ok")
	}

	cache.Set("https://peps.python.org/", []byte("v1"))
	cache.Set("https://peps.python.org/", []byte("v2"))
	cache.Set("https://docs.python.org/3/", []byte("docs"))

	got, ok := cache.Get("https://peps.python.org/")
	if !ok || string(got) != "v2" {
		t.Errorf("Get() = %q, %v; want v2, true", got, ok)
	}

	cache.Delete("https://docs.python.org/3/")
	if _, ok := cache.Get("https://docs.python.org/3/"); ok {
		t.Error("Get() after Delete() returned ok")
	}

	removed, err := cache.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Clear() removed %d, want 1", removed)
	}
	if n, _ := cache.Size(); n != 0 {
		t.Errorf("Size() after Clear() = %d, want 0", n)
	}
}

func TestSQLiteCache_Reopen(t *testing.T) {
	dir := t.TempDir()

	first, err := OpenCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	first.Set("k", []byte("persisted"))
	first.Close()

	second, err := OpenCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	if got, ok := second.Get("k"); !ok || string(got) != "persisted" {
		t.Errorf("Get() after reopen = %q, %v", got, ok)
	}
}

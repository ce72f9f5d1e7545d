package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glabrego/crates-cli/internal/registry"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := NewCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewCache returned error: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	if err := cache.Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	return cache
}

func TestCache_SearchRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	crates := []registry.Crate{
		{Name: "tokio", Downloads: 1000, UpdatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "tokio-util", Downloads: 500},
	}
	if err := cache.SaveSearch(ctx, "tokio|relevance|1|25", crates, 6127); err != nil {
		t.Fatalf("SaveSearch returned error: %v", err)
	}

	got, total, ok, err := cache.LoadSearch(ctx, "tokio|relevance|1|25")
	if err != nil {
		t.Fatalf("LoadSearch returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if total != 6127 || len(got) != 2 || got[0].Name != "tokio" {
		t.Fatalf("unexpected cached page: total=%d crates=%+v", total, got)
	}
}

func TestCache_SearchMiss(t *testing.T) {
	cache := newTestCache(t)

	_, _, ok, err := cache.LoadSearch(context.Background(), "missing")
	if err != nil {
		t.Fatalf("LoadSearch returned error: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestCache_SearchOverwritesExistingKey(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	key := "serde|downloads|1|25"

	if err := cache.SaveSearch(ctx, key, []registry.Crate{{Name: "old"}}, 1); err != nil {
		t.Fatalf("SaveSearch returned error: %v", err)
	}
	if err := cache.SaveSearch(ctx, key, []registry.Crate{{Name: "new"}}, 2); err != nil {
		t.Fatalf("SaveSearch returned error: %v", err)
	}

	got, total, ok, err := cache.LoadSearch(ctx, key)
	if err != nil || !ok {
		t.Fatalf("LoadSearch failed: ok=%v err=%v", ok, err)
	}
	if total != 2 || len(got) != 1 || got[0].Name != "new" {
		t.Fatalf("expected overwritten page, got total=%d crates=%+v", total, got)
	}
}

func TestCache_DetailRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	detail := &registry.Detail{
		Crate:    registry.Crate{Name: "serde", MaxVersion: "1.0.200"},
		Versions: []registry.Version{{Num: "1.0.200"}},
		Keywords: []string{"serialization"},
	}
	if err := cache.SaveDetail(ctx, "serde", detail); err != nil {
		t.Fatalf("SaveDetail returned error: %v", err)
	}

	got, ok, err := cache.LoadDetail(ctx, "serde")
	if err != nil || !ok {
		t.Fatalf("LoadDetail failed: ok=%v err=%v", ok, err)
	}
	if got.Crate.MaxVersion != "1.0.200" || len(got.Versions) != 1 || got.Keywords[0] != "serialization" {
		t.Fatalf("unexpected cached detail: %+v", got)
	}
}

func TestCache_SummaryRoundTripAndWriteCheckPlaceholder(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.CheckWritable(ctx); err != nil {
		t.Fatalf("CheckWritable returned error: %v", err)
	}

	// The placeholder row from the write check must not read back as data.
	if _, ok, err := cache.LoadSummary(ctx); err != nil || ok {
		t.Fatalf("expected no summary after write check: ok=%v err=%v", ok, err)
	}

	summary := &registry.Summary{NumCrates: 140000, NewCrates: []registry.Crate{{Name: "shiny"}}}
	if err := cache.SaveSummary(ctx, summary); err != nil {
		t.Fatalf("SaveSummary returned error: %v", err)
	}

	got, ok, err := cache.LoadSummary(ctx)
	if err != nil || !ok {
		t.Fatalf("LoadSummary failed: ok=%v err=%v", ok, err)
	}
	if got.NumCrates != 140000 || len(got.NewCrates) != 1 {
		t.Fatalf("unexpected cached summary: %+v", got)
	}
}

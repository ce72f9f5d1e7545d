package app

import (
	"context"
	"errors"
	"testing"

	"github.com/glabrego/crates-cli/internal/registry"
)

type fakeClient struct {
	crates  []registry.Crate
	total   uint64
	detail  *registry.Detail
	summary *registry.Summary
	err     error
}

func (f fakeClient) Search(context.Context, registry.SearchQuery) ([]registry.Crate, uint64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.crates, f.total, nil
}

func (f fakeClient) Detail(context.Context, string) (*registry.Detail, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.detail, nil
}

func (f fakeClient) Summary(context.Context) (*registry.Summary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

type fakeCache struct {
	searches  map[string][]registry.Crate
	totals    map[string]uint64
	details   map[string]*registry.Detail
	summary   *registry.Summary
	saveCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		searches: make(map[string][]registry.Crate),
		totals:   make(map[string]uint64),
		details:  make(map[string]*registry.Detail),
	}
}

func (f *fakeCache) SaveSearch(_ context.Context, key string, crates []registry.Crate, total uint64) error {
	f.saveCalls++
	f.searches[key] = append([]registry.Crate(nil), crates...)
	f.totals[key] = total
	return nil
}

func (f *fakeCache) LoadSearch(_ context.Context, key string) ([]registry.Crate, uint64, bool, error) {
	crates, ok := f.searches[key]
	return crates, f.totals[key], ok, nil
}

func (f *fakeCache) SaveDetail(_ context.Context, name string, detail *registry.Detail) error {
	f.details[name] = detail
	return nil
}

func (f *fakeCache) LoadDetail(_ context.Context, name string) (*registry.Detail, bool, error) {
	detail, ok := f.details[name]
	return detail, ok, nil
}

func (f *fakeCache) SaveSummary(_ context.Context, summary *registry.Summary) error {
	f.summary = summary
	return nil
}

func (f *fakeCache) LoadSummary(context.Context) (*registry.Summary, bool, error) {
	return f.summary, f.summary != nil, nil
}

func TestService_Search_CachesSuccessfulFetch(t *testing.T) {
	cache := newFakeCache()
	svc := NewService(fakeClient{crates: []registry.Crate{{Name: "tokio"}}, total: 42}, cache, nil)

	res, err := svc.Search(context.Background(), registry.SearchQuery{Query: "tokio", Page: 1, PageSize: 25})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if res.FromCache {
		t.Fatal("fresh fetch must not be marked as cached")
	}
	if res.Total != 42 || len(res.Crates) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if cache.saveCalls != 1 {
		t.Fatalf("expected one cache save, got %d", cache.saveCalls)
	}
}

func TestService_Search_FallsBackToCacheOnNetworkError(t *testing.T) {
	cache := newFakeCache()
	q := registry.SearchQuery{Query: "tokio", Page: 1, PageSize: 25}
	_ = cache.SaveSearch(context.Background(), searchKey(q), []registry.Crate{{Name: "tokio"}}, 42)
	cache.saveCalls = 0

	svc := NewService(fakeClient{err: errors.New("connection refused")}, cache, nil)
	res, err := svc.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("expected cached fallback, got error: %v", err)
	}
	if !res.FromCache {
		t.Fatal("fallback result must be marked as cached")
	}
	if res.Total != 42 || res.Crates[0].Name != "tokio" {
		t.Fatalf("unexpected fallback result: %+v", res)
	}
}

func TestService_Search_ErrorWhenNoCacheEntry(t *testing.T) {
	svc := NewService(fakeClient{err: errors.New("connection refused")}, newFakeCache(), nil)

	_, err := svc.Search(context.Background(), registry.SearchQuery{Query: "tokio"})
	if err == nil {
		t.Fatal("expected error when both network and cache miss")
	}
}

func TestService_Search_NilCacheIsNetworkOnly(t *testing.T) {
	svc := NewService(fakeClient{crates: []registry.Crate{{Name: "serde"}}, total: 1}, nil, nil)

	res, err := svc.Search(context.Background(), registry.SearchQuery{Query: "serde"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(res.Crates) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	svc = NewService(fakeClient{err: errors.New("boom")}, nil, nil)
	if _, err := svc.Search(context.Background(), registry.SearchQuery{Query: "serde"}); err == nil {
		t.Fatal("expected error without cache")
	}
}

func TestService_Detail_FallsBackToCache(t *testing.T) {
	cache := newFakeCache()
	cache.details["serde"] = &registry.Detail{Crate: registry.Crate{Name: "serde"}}

	svc := NewService(fakeClient{err: errors.New("timeout")}, cache, nil)
	detail, err := svc.Detail(context.Background(), "serde")
	if err != nil {
		t.Fatalf("expected cached detail, got error: %v", err)
	}
	if detail.Crate.Name != "serde" {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}

func TestService_Summary_FallsBackToCache(t *testing.T) {
	cache := newFakeCache()
	cache.summary = &registry.Summary{NumCrates: 7}

	svc := NewService(fakeClient{err: errors.New("timeout")}, cache, nil)
	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("expected cached summary, got error: %v", err)
	}
	if summary.NumCrates != 7 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestService_CancelledContextSkipsFallback(t *testing.T) {
	cache := newFakeCache()
	q := registry.SearchQuery{Query: "tokio"}
	_ = cache.SaveSearch(context.Background(), searchKey(q), []registry.Crate{{Name: "tokio"}}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(fakeClient{err: context.Canceled}, cache, nil)
	if _, err := svc.Search(ctx, q); err == nil {
		t.Fatal("cancelled fetch must not serve cached data")
	}
}

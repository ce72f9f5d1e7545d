package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/glabrego/crates-cli/internal/registry"
)

type RegistryClient interface {
	Search(ctx context.Context, q registry.SearchQuery) ([]registry.Crate, uint64, error)
	Detail(ctx context.Context, name string) (*registry.Detail, error)
	Summary(ctx context.Context) (*registry.Summary, error)
}

type Cache interface {
	SaveSearch(ctx context.Context, key string, crates []registry.Crate, total uint64) error
	LoadSearch(ctx context.Context, key string) ([]registry.Crate, uint64, bool, error)
	SaveDetail(ctx context.Context, name string, detail *registry.Detail) error
	LoadDetail(ctx context.Context, name string) (*registry.Detail, bool, error)
	SaveSummary(ctx context.Context, summary *registry.Summary) error
	LoadSummary(ctx context.Context) (*registry.Summary, bool, error)
}

// SearchResult is one fetched page of crates. FromCache marks results that
// came from the local fallback cache rather than the registry.
type SearchResult struct {
	Crates    []registry.Crate
	Total     uint64
	FromCache bool
}

// Service fronts the registry client with a best-effort response cache:
// fresh data is preferred, cached data is served when the network fails.
type Service struct {
	client RegistryClient
	cache  Cache
	log    *slog.Logger
}

// NewService builds a Service. cache may be nil, in which case fetches are
// network-only.
func NewService(client RegistryClient, cache Cache, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{client: client, cache: cache, log: log}
}

func searchKey(q registry.SearchQuery) string {
	return fmt.Sprintf("%s|%s|%d|%d", q.Query, q.Sort.String(), q.Page, q.PageSize)
}

func (s *Service) Search(ctx context.Context, q registry.SearchQuery) (SearchResult, error) {
	crates, total, err := s.client.Search(ctx, q)
	if err == nil {
		if s.cache != nil {
			if saveErr := s.cache.SaveSearch(ctx, searchKey(q), crates, total); saveErr != nil {
				s.log.Warn("search cache save failed", "error", saveErr)
			}
		}
		return SearchResult{Crates: crates, Total: total}, nil
	}
	if ctx.Err() != nil {
		return SearchResult{}, err
	}

	if s.cache != nil {
		cached, cachedTotal, ok, cacheErr := s.cache.LoadSearch(ctx, searchKey(q))
		if cacheErr != nil {
			s.log.Warn("search cache load failed", "error", cacheErr)
		} else if ok {
			s.log.Info("serving cached search results", "query", q.Query, "page", q.Page)
			return SearchResult{Crates: cached, Total: cachedTotal, FromCache: true}, nil
		}
	}
	return SearchResult{}, fmt.Errorf("search crates: %w", err)
}

func (s *Service) Detail(ctx context.Context, name string) (*registry.Detail, error) {
	detail, err := s.client.Detail(ctx, name)
	if err == nil {
		if s.cache != nil {
			if saveErr := s.cache.SaveDetail(ctx, name, detail); saveErr != nil {
				s.log.Warn("detail cache save failed", "crate", name, "error", saveErr)
			}
		}
		return detail, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, ok, cacheErr := s.cache.LoadDetail(ctx, name)
		if cacheErr != nil {
			s.log.Warn("detail cache load failed", "crate", name, "error", cacheErr)
		} else if ok {
			return cached, nil
		}
	}
	return nil, fmt.Errorf("fetch crate %s: %w", name, err)
}

func (s *Service) Summary(ctx context.Context) (*registry.Summary, error) {
	summary, err := s.client.Summary(ctx)
	if err == nil {
		if s.cache != nil {
			if saveErr := s.cache.SaveSummary(ctx, summary); saveErr != nil {
				s.log.Warn("summary cache save failed", "error", saveErr)
			}
		}
		return summary, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, ok, cacheErr := s.cache.LoadSummary(ctx)
		if cacheErr != nil {
			s.log.Warn("summary cache load failed", "error", cacheErr)
		} else if ok {
			return cached, nil
		}
	}
	return nil, fmt.Errorf("fetch summary: %w", err)
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glabrego/crates-cli/internal/registry"
)

// Cache persists raw registry responses so the app can fall back to the
// last known data when the network is unavailable. It caches responses,
// never UI state.
type Cache struct {
	db *sql.DB
}

func NewCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Cache) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS search_cache (
  key TEXT PRIMARY KEY,
  total INTEGER NOT NULL,
  payload TEXT NOT NULL,
  fetched_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS detail_cache (
  name TEXT PRIMARY KEY,
  payload TEXT NOT NULL,
  fetched_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS summary_cache (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  payload TEXT NOT NULL,
  fetched_at TEXT NOT NULL
);
`
	if _, err := c.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (c *Cache) CheckWritable(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `
INSERT INTO summary_cache (id, payload, fetched_at) VALUES (1, '{}', ?)
ON CONFLICT(id) DO UPDATE SET fetched_at=summary_cache.fetched_at
`, now())
	if err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

type searchPayload struct {
	Crates []registry.Crate `json:"crates"`
}

func (c *Cache) SaveSearch(ctx context.Context, key string, crates []registry.Crate, total uint64) error {
	payload, err := json.Marshal(searchPayload{Crates: crates})
	if err != nil {
		return fmt.Errorf("encode search payload: %w", err)
	}
	_, err = c.db.ExecContext(ctx, `
INSERT INTO search_cache (key, total, payload, fetched_at) VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  total=excluded.total,
  payload=excluded.payload,
  fetched_at=excluded.fetched_at
`, key, int64(total), string(payload), now())
	if err != nil {
		return fmt.Errorf("save search page %q: %w", key, err)
	}
	return nil
}

func (c *Cache) LoadSearch(ctx context.Context, key string) ([]registry.Crate, uint64, bool, error) {
	var total int64
	var payload string
	err := c.db.QueryRowContext(ctx, `
SELECT total, payload FROM search_cache WHERE key = ?
`, key).Scan(&total, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("load search page %q: %w", key, err)
	}

	var decoded searchPayload
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, 0, false, fmt.Errorf("decode search payload %q: %w", key, err)
	}
	return decoded.Crates, uint64(total), true, nil
}

func (c *Cache) SaveDetail(ctx context.Context, name string, detail *registry.Detail) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("encode detail payload: %w", err)
	}
	_, err = c.db.ExecContext(ctx, `
INSERT INTO detail_cache (name, payload, fetched_at) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
  payload=excluded.payload,
  fetched_at=excluded.fetched_at
`, name, string(payload), now())
	if err != nil {
		return fmt.Errorf("save detail %q: %w", name, err)
	}
	return nil
}

func (c *Cache) LoadDetail(ctx context.Context, name string) (*registry.Detail, bool, error) {
	var payload string
	err := c.db.QueryRowContext(ctx, `
SELECT payload FROM detail_cache WHERE name = ?
`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load detail %q: %w", name, err)
	}

	var decoded registry.Detail
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, false, fmt.Errorf("decode detail payload %q: %w", name, err)
	}
	return &decoded, true, nil
}

func (c *Cache) SaveSummary(ctx context.Context, summary *registry.Summary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary payload: %w", err)
	}
	_, err = c.db.ExecContext(ctx, `
INSERT INTO summary_cache (id, payload, fetched_at) VALUES (1, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  payload=excluded.payload,
  fetched_at=excluded.fetched_at
`, string(payload), now())
	if err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	return nil
}

func (c *Cache) LoadSummary(ctx context.Context) (*registry.Summary, bool, error) {
	var payload string
	err := c.db.QueryRowContext(ctx, `
SELECT payload FROM summary_cache WHERE id = 1
`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load summary: %w", err)
	}
	if payload == "{}" {
		// The write check leaves an empty placeholder row.
		return nil, false, nil
	}

	var decoded registry.Summary
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, false, fmt.Errorf("decode summary payload: %w", err)
	}
	return &decoded, true, nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

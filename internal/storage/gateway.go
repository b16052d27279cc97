// Package storage is the persistence gateway: the whole store snapshot is
// serialized as one JSON blob in a single SQLite row and replaced on every
// save. The core never sees partial writes.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"dreamplan/internal/store"
)

// SnapshotKey identifies the single snapshot row; the suffix is the data
// format generation.
const SnapshotKey = "planner_v1"

type Gateway struct {
	db *sql.DB
}

func NewGateway(db *sql.DB) *Gateway {
	return &Gateway{db: db}
}

// Load returns the last saved snapshot run through the additive
// migration, or (zero, false) on first run. A corrupt blob also reports
// false: there is no recovery path for a single local blob, so callers
// fall back to the default store rather than failing.
func (g *Gateway) Load(ctx context.Context) (store.Store, bool, error) {
	row := g.db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE key = ?`, SnapshotKey)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return store.Store{}, false, nil
		}
		return store.Store{}, false, fmt.Errorf("snapshot load: %w", err)
	}

	var s store.Store
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return store.Store{}, false, fmt.Errorf("snapshot decode: %w", err)
	}
	return store.Migrate(s), true, nil
}

// Save persists the full snapshot, overwriting any prior one.
func (g *Gateway) Save(ctx context.Context, s store.Store) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}
	_, err = g.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, data, saved_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, saved_at = CURRENT_TIMESTAMP
	`, SnapshotKey, string(data))
	if err != nil {
		return fmt.Errorf("snapshot save: %w", err)
	}
	return nil
}

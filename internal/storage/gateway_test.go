package storage

import (
	"context"
	"path/filepath"
	"testing"

	"dreamplan/internal/store"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewGateway(db)
}

func TestLoadBeforeFirstSave(t *testing.T) {
	gw := newTestGateway(t)
	_, ok, err := gw.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatal("fresh db must report no snapshot")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	s := store.Default()
	s.PIN = "1234"
	s.Dreams = append(s.Dreams, store.Dream{
		ID:        "dream_1",
		Type:      store.DreamTypeDream,
		Title:     "sail the world",
		SphereID:  "sphere_growth",
		Status:    store.DreamActive,
		IsFocused: true,
		IsLeading: true,
		SortOrder: 1,
	})

	if err := gw.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := gw.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatal("saved snapshot not found")
	}
	if got.PIN != "1234" {
		t.Fatalf("pin = %q", got.PIN)
	}
	if len(got.Dreams) != 1 || got.Dreams[0].Title != "sail the world" || !got.Dreams[0].IsLeading {
		t.Fatalf("dreams = %+v", got.Dreams)
	}
	if got.Activities != nil {
		t.Fatal("never-used activities must stay nil through persistence")
	}
}

func TestSaveOverwritesSingleRow(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	s := store.Default()
	if err := gw.Save(ctx, s); err != nil {
		t.Fatalf("first save: %v", err)
	}
	s.PIN = "9999"
	if err := gw.Save(ctx, s); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, ok, err := gw.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got.PIN != "9999" {
		t.Fatalf("pin = %q, want the later save", got.PIN)
	}

	var rows int
	if err := gw.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Fatalf("snapshot rows = %d, want 1", rows)
	}
}

func TestLoadRunsMigration(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	// A snapshot from an older format generation missing newer collections.
	_, err := gw.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, data) VALUES (?, ?)`,
		SnapshotKey, `{"dreams":[{"id":"dream_1","type":"dream","title":"old","status":"active"}]}`)
	if err != nil {
		t.Fatalf("seed row: %v", err)
	}

	got, ok, err := gw.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if len(got.Dreams) != 1 {
		t.Fatalf("dreams = %d", len(got.Dreams))
	}
	if got.Goals == nil || got.Actions == nil || got.Spheres == nil {
		t.Fatal("migration must fill missing planner collections")
	}
	if got.Funds != nil {
		t.Fatal("migration must leave lazily seeded collections nil")
	}
}

func TestLoadCorruptBlob(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	_, err := gw.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, data) VALUES (?, ?)`, SnapshotKey, `{not json`)
	if err != nil {
		t.Fatalf("seed row: %v", err)
	}
	if _, _, err := gw.Load(ctx); err == nil {
		t.Fatal("corrupt blob must surface an error")
	}
}

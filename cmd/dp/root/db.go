package root

import (
	"context"
	"fmt"
	"os"

	"dreamplan/internal/storage"
	"dreamplan/internal/store"
	"dreamplan/internal/ui"
)

func openGateway(ctx context.Context) (*storage.Gateway, func(), error) {
	path, err := storage.ResolveDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return storage.NewGateway(db), cleanup, nil
}

// loadStore returns the saved snapshot or the bootstrap default. A broken
// blob falls back to the default store: there is nothing to recover from
// a single local blob, so it is noted on stderr and life goes on.
func loadStore(ctx context.Context, gw *storage.Gateway) store.Store {
	s, ok, err := gw.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Warn.Render(ui.IconWarn+" could not read saved data, starting fresh: "+err.Error()))
		return store.Default()
	}
	if !ok {
		return store.Default()
	}
	return s
}

// withStore runs one load→mutate→save cycle. The mutation returns the
// replacement snapshot; the old one is never touched.
func withStore(ctx context.Context, fn func(store.Store) (store.Store, error)) error {
	gw, cleanup, err := openGateway(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	next, err := fn(loadStore(ctx, gw))
	if err != nil {
		return err
	}
	return gw.Save(ctx, next)
}

// readStore loads a snapshot for read-only commands.
func readStore(ctx context.Context) (store.Store, func(), error) {
	gw, cleanup, err := openGateway(ctx)
	if err != nil {
		return store.Store{}, nil, err
	}
	return loadStore(ctx, gw), cleanup, nil
}

// Package backend selects the record store the ledger runs on.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/messledger/internal/config"
	"github.com/mmynk/messledger/internal/storage"
	"github.com/mmynk/messledger/internal/storage/remote"
	"github.com/mmynk/messledger/internal/storage/sqlite"
)

// Result is an opened store plus its background work, if any.
type Result struct {
	Store storage.Store

	// Poll runs until ctx is done. Nil for stores that notify on their own.
	Poll func(ctx context.Context) error
}

// Open creates the store named by cfg.StoreBackend.
func Open(ctx context.Context, cfg *config.Config) (*Result, error) {
	switch cfg.StoreBackend {
	case config.BackendLocal:
		return openLocal(cfg)
	case config.BackendRemote:
		return openRemote(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
	}
}

func openLocal(cfg *config.Config) (*Result, error) {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	slog.Info("Initialized local backend", "database", cfg.DBPath)
	return &Result{Store: store}, nil
}

func openRemote(ctx context.Context, cfg *config.Config) (*Result, error) {
	store := remote.New(cfg.RemoteURL, nil)

	// Fail fast on an unreachable server.
	if _, err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach remote ledger at %s: %w", cfg.RemoteURL, err)
	}

	slog.Info("Initialized remote backend",
		"url", cfg.RemoteURL,
		"poll_interval", cfg.RemotePollInterval,
	)
	return &Result{
		Store: store,
		Poll: func(ctx context.Context) error {
			return store.Poll(ctx, cfg.RemotePollInterval)
		},
	}, nil
}

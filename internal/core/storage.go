package core

import (
	"context"
	"fmt"
	"io"

	"fibernet/internal/infra/persistence/memory"
	"fibernet/internal/infra/persistence/postgres"
	"fibernet/internal/infra/persistence/sqlite"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// StorageConfig selects and locates the backend.
type StorageConfig struct {
	Driver      StorageDriver
	SQLitePath  string
	PostgresDSN string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenPersistentStore opens the configured backend. The returned closer
// releases database handles; it is a no-op for the memory driver.
func OpenPersistentStore(ctx context.Context, cfg StorageConfig, engine *RulesEngine, opts ...memory.Option) (PersistentStore, io.Closer, error) {
	switch cfg.Driver {
	case StorageMemory, "":
		return memory.NewStore(engine, opts...), nopCloser{}, nil
	case StorageSQLite:
		st, err := sqlite.NewStore(cfg.SQLitePath, engine, opts...)
		if err != nil {
			return nil, nil, err
		}
		return st, st, nil
	case StoragePostgres:
		st, err := postgres.NewStore(ctx, cfg.PostgresDSN, engine, opts...)
		if err != nil {
			return nil, nil, err
		}
		return st, st, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %s", cfg.Driver)
	}
}

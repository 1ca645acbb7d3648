package core

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenPersistentStoreMemory(t *testing.T) {
	store, closer, err := OpenPersistentStore(context.Background(), StorageConfig{}, NewDefaultRulesEngine())
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.NoError(t, closer.Close())
}

func TestOpenPersistentStoreSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	cfg := StorageConfig{Driver: StorageSQLite, SQLitePath: filepath.Join(t.TempDir(), "inv.db")}

	store, closer, err := OpenPersistentStore(ctx, cfg, NewDefaultRulesEngine())
	require.NoError(t, err)
	svc := NewService(store, WithLatency(Latency{}))
	c, _, err := svc.AddClient(ctx, Client{Name: "Persistido"})
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	store, closer, err = OpenPersistentStore(ctx, cfg, NewDefaultRulesEngine())
	require.NoError(t, err)
	defer closer.Close()
	got, ok, err := NewService(store, WithLatency(Latency{})).GetClient(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Persistido", got.Name)
}

func TestOpenPersistentStoreUnknownDriver(t *testing.T) {
	_, _, err := OpenPersistentStore(context.Background(), StorageConfig{Driver: "mongo"}, nil)
	assert.ErrorContains(t, err, "unknown storage driver")
}

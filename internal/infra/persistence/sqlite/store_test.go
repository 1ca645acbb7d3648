package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fibernet/internal/infra/persistence/memory"
	"fibernet/pkg/domain"
)

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if store.Path() != path || store.DB() == nil {
		t.Fatalf("unexpected accessors")
	}
	var boxID string
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if _, err := tx.CreateClient(domain.Client{ID: "c1", Name: "Ana"}); err != nil {
			return err
		}
		b, err := tx.CreateBox(domain.Box{Code: "CX-001", InputCables: []domain.Cable{{FiberCount: 24}}})
		if err != nil {
			return err
		}
		boxID = b.ID
		_, err = tx.UpdateFiber(b.ID, b.InputCables[0].ID, b.InputCables[0].Fibers[4].ID, func(f *domain.Fiber) error {
			f.ClientID = domain.Ref("c1")
			return nil
		})
		return err
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	err = reopened.View(context.Background(), func(v domain.TransactionView) error {
		if _, ok := v.FindClient("c1"); !ok {
			t.Fatalf("client not reloaded")
		}
		b, ok := v.FindBox(boxID)
		if !ok || len(b.InputCables) != 1 || len(b.InputCables[0].Fibers) != 24 {
			t.Fatalf("box not reloaded: %+v", b)
		}
		if domain.Deref(b.InputCables[0].Fibers[4].ClientID) != "c1" {
			t.Fatalf("fiber assignment lost")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestSQLiteStoreSkipsPersistOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()
	boom := errors.New("boom")
	if _, err := store.RunInTransaction(context.Background(), func(domain.Transaction) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected mutator error, got %v", err)
	}
	var count int
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM state`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no persisted buckets, got %d", count)
	}
	if _, err := store.RunInTransaction(context.Background(), func(domain.Transaction) error { return nil }); err != nil {
		t.Fatalf("empty transaction: %v", err)
	}
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM state`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != len(memory.Buckets) {
		t.Fatalf("expected %d buckets, got %d", len(memory.Buckets), count)
	}
}

func TestSQLiteStoreRejectsCorruptBucket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.DB().Exec(`INSERT INTO state(bucket,payload) VALUES(?,?)`, memory.BucketClients, []byte("{")); err != nil {
		t.Fatalf("seed corrupt bucket: %v", err)
	}
	_ = store.Close()
	if _, err := NewStore(path, nil); err == nil {
		t.Fatalf("expected decode error")
	}
}

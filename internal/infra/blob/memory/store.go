// Package memory keeps blobs in process memory. It backs tests and the
// ephemeral deployment where photos and backups need not survive a restart.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"fibernet/internal/blob/core"
)

type object struct {
	info core.Info
	data []byte
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the source of LastModified timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithMaxObjectSize rejects Puts larger than n bytes. Zero disables the limit.
func WithMaxObjectSize(n int64) Option {
	return func(s *Store) { s.maxSize = n }
}

// Store implements core.Store over a map guarded by a RWMutex.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object
	now     func() time.Time
	maxSize int64
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{objects: make(map[string]object), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Driver reports core.DriverMemory.
func (s *Store) Driver() core.Driver { return core.DriverMemory }

// Put reads r fully and stores it under key. Existing keys are never
// overwritten.
func (s *Store) Put(_ context.Context, key string, r io.Reader, opts core.PutOptions) (core.Info, error) {
	if key == "" || strings.HasSuffix(key, "/") {
		return core.Info{}, fmt.Errorf("blob %q: %w", key, core.ErrInvalidKey)
	}
	src := r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return core.Info{}, fmt.Errorf("read blob %s: %w", key, err)
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return core.Info{}, fmt.Errorf("blob %s exceeds %d bytes: %w", key, s.maxSize, core.ErrTooLarge)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.objects[key]; taken {
		return core.Info{}, fmt.Errorf("blob %s: %w", key, core.ErrExists)
	}
	obj := object{
		info: core.Info{
			Key:          key,
			Size:         int64(len(data)),
			ContentType:  opts.ContentType,
			Metadata:     core.CloneMetadata(opts.Metadata),
			LastModified: s.now().UTC(),
		},
		data: data,
	}
	s.objects[key] = obj
	return obj.copyInfo(), nil
}

// Get returns the blob's metadata and a reader over a private copy of its
// bytes.
func (s *Store) Get(_ context.Context, key string) (core.Info, io.ReadCloser, error) {
	obj, err := s.lookup(key)
	if err != nil {
		return core.Info{}, nil, err
	}
	return obj.copyInfo(), io.NopCloser(bytes.NewReader(bytes.Clone(obj.data))), nil
}

// Head returns the blob's metadata.
func (s *Store) Head(_ context.Context, key string) (core.Info, error) {
	obj, err := s.lookup(key)
	if err != nil {
		return core.Info{}, err
	}
	return obj.copyInfo(), nil
}

// Delete removes key and reports whether it was present.
func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return false, nil
	}
	delete(s.objects, key)
	return true, nil
}

// List returns the blobs whose key starts with prefix, sorted by key.
func (s *Store) List(_ context.Context, prefix string) ([]core.Info, error) {
	s.mu.RLock()
	out := make([]core.Info, 0, len(s.objects))
	for key, obj := range s.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, obj.copyInfo())
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b core.Info) int { return strings.Compare(a.Key, b.Key) })
	return out, nil
}

// PresignURL always fails: there is no endpoint serving process memory.
func (s *Store) PresignURL(context.Context, string, core.SignedURLOptions) (string, error) {
	return "", core.ErrUnsupported
}

func (s *Store) lookup(key string) (object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return object{}, fmt.Errorf("blob %s: %w", key, core.ErrNotFound)
	}
	return obj, nil
}

func (o object) copyInfo() core.Info {
	info := o.info
	info.Metadata = core.CloneMetadata(info.Metadata)
	return info
}

// Package core defines the blob storage contract shared by the backend
// implementations and the services that store photos and backups.
package core

import (
	"context"
	"errors"
	"io"
	"maps"
	"time"
)

// Driver identifies a concrete blob storage backend implementation.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local directory, the default
	DriverS3         Driver = "s3"     // AWS S3 or MinIO
	DriverMemory     Driver = "memory" // process memory, lost on exit
)

// PutOptions carries the object attributes recorded with a Put. Photo uploads
// set the entity kind and id in Metadata.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// SignedURLOptions holds options for generating a pre-signed URL.
type SignedURLOptions struct {
	Method string        // GET only
	Expiry time.Duration // default 15m
}

// Info describes a stored blob.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
	URL          string            `json:"url,omitempty"`
}

// Store provides a thin S3-like abstraction used by higher layers. Put is
// create-only and fails when the key already exists.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	PresignURL(ctx context.Context, key string, opts SignedURLOptions) (string, error)
	Driver() Driver
}

var (
	// ErrUnsupported is returned when an optional capability is not available.
	ErrUnsupported = errors.New("blobstore: unsupported operation")
	// ErrNotFound is matched by errors returned for missing keys.
	ErrNotFound = errors.New("blobstore: not found")
	// ErrExists is matched by errors returned when Put targets an existing key.
	ErrExists = errors.New("blobstore: already exists")
	// ErrInvalidKey is matched by errors returned for keys a backend rejects.
	ErrInvalidKey = errors.New("blobstore: invalid key")
	// ErrTooLarge is matched by errors returned when a Put exceeds a size limit.
	ErrTooLarge = errors.New("blobstore: object too large")
)

// CloneMetadata copies user metadata so callers cannot alias stored maps.
func CloneMetadata(in map[string]string) map[string]string {
	return maps.Clone(in)
}

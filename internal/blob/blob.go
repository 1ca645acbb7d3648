// Package blob selects and constructs the configured blob storage backend.
// Backends live under internal/infra/blob; this package re-exports their
// shared contract so callers depend on a single import.
package blob

import (
	"context"
	"fmt"
	"strings"

	"fibernet/internal/blob/core"
	"fibernet/internal/infra/blob/fs"
	"fibernet/internal/infra/blob/memory"
	"fibernet/internal/infra/blob/s3"
)

type (
	// Driver identifies a concrete backend.
	Driver = core.Driver
	// Store is the S3-like storage contract.
	Store = core.Store
	// Info describes a stored blob.
	Info = core.Info
	// PutOptions configures Put.
	PutOptions = core.PutOptions
	// SignedURLOptions configures PresignURL.
	SignedURLOptions = core.SignedURLOptions
	// S3Config configures the S3 backend.
	S3Config = s3.Config
)

// Driver identifiers.
const (
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

// Sentinel errors shared by all backends.
var (
	ErrUnsupported = core.ErrUnsupported
	ErrNotFound    = core.ErrNotFound
	ErrExists      = core.ErrExists
	ErrInvalidKey  = core.ErrInvalidKey
	ErrTooLarge    = core.ErrTooLarge
)

// Config selects and parameterizes a backend.
type Config struct {
	Driver  Driver
	FSRoot  string
	BaseURL string // serving prefix for filesystem blobs
	S3      S3Config
	// MaxObjectSize caps objects held by the memory driver; zero is unlimited.
	MaxObjectSize int64
}

// Open constructs the backend named by cfg.Driver. An empty driver selects the
// filesystem.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch Driver(strings.ToLower(string(cfg.Driver))) {
	case DriverFilesystem, "":
		return fs.New(cfg.FSRoot, cfg.BaseURL)
	case DriverMemory:
		return memory.New(memory.WithMaxObjectSize(cfg.MaxObjectSize)), nil
	case DriverS3:
		return s3.New(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}

// NewMemory returns an in-memory store.
func NewMemory() Store { return memory.New() }

// Package core implements the fibernet access layer: every read and write of
// the inventory goes through Service, which waits the configured simulated
// latency, runs the operation in a store transaction and records metrics.
package core

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fibernet/internal/blob"
	"fibernet/internal/pkg/logger"
	"fibernet/pkg/domain"
)

// Latency holds the simulated delay of each class of access-layer call.
type Latency struct {
	Read        time.Duration
	ClientRead  time.Duration
	Write       time.Duration
	Lookup      time.Duration
	FiberUpdate time.Duration
}

// DefaultLatency mirrors the delays of the dashboard's mock backend.
func DefaultLatency() Latency {
	return Latency{
		Read:        200 * time.Millisecond,
		ClientRead:  100 * time.Millisecond,
		Write:       300 * time.Millisecond,
		Lookup:      150 * time.Millisecond,
		FiberUpdate: 200 * time.Millisecond,
	}
}

// Service exposes the transactional inventory operations.
type Service struct {
	store   PersistentStore
	blobs   blob.Store
	latency Latency
	log     *zap.Logger
	metrics MetricsRecorder
}

// ServiceOption configures optional collaborators.
type ServiceOption func(*Service)

// WithLatency overrides the simulated delays.
func WithLatency(l Latency) ServiceOption {
	return func(s *Service) { s.latency = l }
}

// WithLogger sets the logger used for failed operations.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics sets the operation metrics recorder.
func WithMetrics(m MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithBlobStore sets the object store holding photos.
func WithBlobStore(b blob.Store) ServiceOption {
	return func(s *Service) { s.blobs = b }
}

// NewService constructs a service backed by the supplied store. Without
// options it uses DefaultLatency, the global logger and no metrics.
func NewService(store PersistentStore, opts ...ServiceOption) *Service {
	s := &Service{
		store:   store,
		latency: DefaultLatency(),
		log:     logger.L(),
		metrics: noopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

// RulesEngine returns the engine evaluated on every commit.
func (s *Service) RulesEngine() *RulesEngine {
	return s.store.RulesEngine()
}

// BlobStore returns the configured photo store, if any.
func (s *Service) BlobStore() blob.Store {
	return s.blobs
}

// write waits the delay and runs fn in a transaction. Non-blocking rule
// results are logged as warnings.
func (s *Service) write(ctx context.Context, op string, delay time.Duration, fn func(Transaction) error, fields ...zap.Field) (Result, error) {
	start := time.Now()
	var res Result
	err := sleep(ctx, delay)
	if err == nil {
		res, err = s.store.RunInTransaction(ctx, fn)
	}
	s.observe(ctx, op, start, err, fields)
	for _, v := range res.Violations {
		if v.Severity != domain.SeverityBlock {
			s.log.Warn("rule violation",
				zap.String("op", op),
				zap.String("rule", v.Rule),
				zap.String("entity", string(v.Entity)),
				zap.String("entity_id", v.EntityID),
				zap.String("message", v.Message),
			)
		}
	}
	return res, err
}

// read waits the delay and runs fn against the committed state.
func (s *Service) read(ctx context.Context, op string, delay time.Duration, fn func(TransactionView) error) error {
	start := time.Now()
	err := sleep(ctx, delay)
	if err == nil {
		err = s.store.View(ctx, fn)
	}
	s.observe(ctx, op, start, err, nil)
	return err
}

func (s *Service) observe(ctx context.Context, op string, start time.Time, err error, fields []zap.Field) {
	s.metrics.Observe(ctx, op, err == nil, time.Since(start))
	if err != nil {
		s.log.Error("operation failed", append([]zap.Field{zap.String("op", op), zap.Error(err)}, fields...)...)
	}
}

// sleep blocks for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Package export writes point-in-time backups of the inventory to blob
// storage. Each export stores the full snapshot as JSON and a CSV report of
// every client assignment, and runs on the shared worker pool.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fibernet/internal/blob"
	"fibernet/internal/infra/persistence/memory"
	"fibernet/internal/pkg/logger"
	"fibernet/internal/pkg/worker"
)

// Status tracks the lifecycle of an export.
type Status string

// Export statuses.
const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Triggers recorded on exports.
const (
	TriggerManual    = "manual"
	TriggerScheduled = "scheduled"
)

// DefaultPrefix is the blob key prefix used when none is configured.
const DefaultPrefix = "backups"

// Artifact describes one object written by an export.
type Artifact struct {
	Key         string `json:"key"`
	Format      string `json:"format"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size_bytes"`
}

// Record is the tracked state of one export.
type Record struct {
	ID          string     `json:"id"`
	Status      Status     `json:"status"`
	Trigger     string     `json:"trigger"`
	RequestedBy string     `json:"requested_by,omitempty"`
	Artifacts   []Artifact `json:"artifacts,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (r Record) clone() Record {
	r.Artifacts = append([]Artifact(nil), r.Artifacts...)
	if r.CompletedAt != nil {
		ts := *r.CompletedAt
		r.CompletedAt = &ts
	}
	return r
}

// Source provides the snapshot to back up.
type Source interface {
	Snapshot(ctx context.Context) (memory.Snapshot, error)
}

// Config tunes an Exporter.
type Config struct {
	Prefix string
	// Interval enables periodic exports when positive.
	Interval time.Duration
	Now      func() time.Time
	Logger   *zap.Logger
	// Retain bounds the records kept for Get and List. The oldest finished
	// records are dropped first; queued and running ones are always kept.
	// Zero selects DefaultRetain.
	Retain int
}

// DefaultRetain is the number of export records kept when Config.Retain is
// not positive.
const DefaultRetain = 100

// Exporter schedules and tracks backup exports.
type Exporter struct {
	src      Source
	blobs    blob.Store
	pool     *worker.Pool
	prefix   string
	interval time.Duration
	now      func() time.Time
	log      *zap.Logger

	mu     sync.RWMutex
	jobs   map[string]*Record
	order  []string // ids, oldest first
	retain int

	stopOnce sync.Once
	stop     chan struct{}
	wg       sync.WaitGroup
}

// ErrNotConfigured is returned when the exporter lacks a source, blob store
// or pool.
var ErrNotConfigured = errors.New("exporter not configured")

// New constructs an exporter. Call Start to enable periodic exports.
func New(src Source, blobs blob.Store, pool *worker.Pool, cfg Config) *Exporter {
	prefix := strings.Trim(cfg.Prefix, "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	log := cfg.Logger
	if log == nil {
		log = logger.L()
	}
	retain := cfg.Retain
	if retain <= 0 {
		retain = DefaultRetain
	}
	return &Exporter{
		retain:   retain,
		src:      src,
		blobs:    blobs,
		pool:     pool,
		prefix:   prefix,
		interval: cfg.Interval,
		now:      now,
		log:      log.With(zap.String("component", "exporter")),
		jobs:     make(map[string]*Record),
		stop:     make(chan struct{}),
	}
}

// Enqueue records a queued export and submits it to the worker pool. The
// export outlives ctx; only the pool's shutdown cancels it.
func (e *Exporter) Enqueue(ctx context.Context, requestedBy string) (Record, error) {
	return e.enqueue(ctx, TriggerManual, requestedBy)
}

func (e *Exporter) enqueue(ctx context.Context, trigger, requestedBy string) (Record, error) {
	if e.src == nil || e.blobs == nil || e.pool == nil {
		return Record{}, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	now := e.now()
	rec := &Record{
		ID:          uuid.NewString(),
		Status:      StatusQueued,
		Trigger:     trigger,
		RequestedBy: requestedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	e.mu.Lock()
	e.jobs[rec.ID] = rec
	e.order = append(e.order, rec.ID)
	e.evictLocked()
	queued := rec.clone()
	e.mu.Unlock()

	id := rec.ID
	if err := e.pool.SubmitDetached(func(ctx context.Context) { e.process(ctx, id) }); err != nil {
		e.fail(id, err.Error())
		return Record{}, fmt.Errorf("submit export: %w", err)
	}
	e.log.Info("export queued", zap.String("export_id", id), zap.String("trigger", trigger))
	return queued, nil
}

// Get returns the export with the given id.
func (e *Exporter) Get(id string) (Record, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	rec, ok := e.jobs[id]
	if !ok {
		return Record{}, false
	}
	return rec.clone(), true
}

// List returns every tracked export, newest first.
func (e *Exporter) List() []Record {
	e.mu.RLock()
	out := make([]Record, 0, len(e.jobs))
	for _, rec := range e.jobs {
		out = append(out, rec.clone())
	}
	e.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Start launches the periodic scheduler when an interval is configured.
func (e *Exporter) Start(ctx context.Context) {
	if e.interval <= 0 {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-e.stop:
				return
			case <-ticker.C:
				if _, err := e.enqueue(ctx, TriggerScheduled, ""); err != nil {
					e.log.Warn("scheduled export not queued", zap.Error(err))
				}
			}
		}
	}()
	e.log.Info("export scheduler started", zap.Duration("interval", e.interval))
}

// Stop halts the scheduler. Running exports are drained by the pool's
// shutdown.
func (e *Exporter) Stop(ctx context.Context) error {
	e.stopOnce.Do(func() { close(e.stop) })
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Exporter) process(ctx context.Context, id string) {
	if !e.transition(id, StatusRunning) {
		return
	}
	log := e.log.With(zap.String("export_id", id))
	start := time.Now()

	snap, err := e.src.Snapshot(ctx)
	if err != nil {
		e.fail(id, fmt.Sprintf("snapshot: %v", err))
		log.Error("export failed", zap.Error(err))
		return
	}
	dir := e.directory(id)
	artifacts := make([]Artifact, 0, 2)
	for _, r := range []rendered{renderSnapshot(snap), renderAssignments(snap)} {
		if r.err != nil {
			e.fail(id, fmt.Sprintf("render %s: %v", r.format, r.err))
			log.Error("export failed", zap.String("format", r.format), zap.Error(r.err))
			return
		}
		key := path.Join(dir, r.name)
		info, err := e.blobs.Put(ctx, key, bytes.NewReader(r.payload), blob.PutOptions{
			ContentType: r.contentType,
			Metadata:    map[string]string{"export_id": id, "format": r.format},
		})
		if err != nil {
			e.fail(id, fmt.Sprintf("store %s: %v", key, err))
			log.Error("export failed", zap.String("key", key), zap.Error(err))
			return
		}
		artifacts = append(artifacts, Artifact{Key: info.Key, Format: r.format, ContentType: r.contentType, Size: info.Size})
	}

	e.mu.Lock()
	if rec, ok := e.jobs[id]; ok {
		now := e.now()
		rec.Status = StatusSucceeded
		rec.Artifacts = artifacts
		rec.UpdatedAt = now
		rec.CompletedAt = &now
	}
	e.mu.Unlock()
	log.Info("export succeeded", zap.Int("artifacts", len(artifacts)), zap.Duration("duration", time.Since(start)))
}

// directory is the blob prefix of one export: the export time plus a short
// id so that exports started within the same second do not collide.
func (e *Exporter) directory(id string) string {
	e.mu.RLock()
	created := e.now()
	if rec, ok := e.jobs[id]; ok {
		created = rec.CreatedAt
	}
	e.mu.RUnlock()
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return path.Join(e.prefix, created.UTC().Format("20060102T150405Z")+"-"+short)
}

func (e *Exporter) transition(id string, status Status) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, ok := e.jobs[id]
	if !ok {
		return false
	}
	rec.Status = status
	rec.UpdatedAt = e.now()
	return true
}

func (e *Exporter) fail(id, msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, ok := e.jobs[id]
	if !ok {
		return
	}
	now := e.now()
	rec.Status = StatusFailed
	rec.Error = msg
	rec.UpdatedAt = now
	rec.CompletedAt = &now
}

// evictLocked drops the oldest finished records beyond the retention limit.
// Callers hold e.mu.
func (e *Exporter) evictLocked() {
	excess := len(e.jobs) - e.retain
	if excess <= 0 {
		return
	}
	kept := e.order[:0]
	for _, id := range e.order {
		rec := e.jobs[id]
		if excess > 0 && (rec.Status == StatusSucceeded || rec.Status == StatusFailed) {
			delete(e.jobs, id)
			excess--
			continue
		}
		kept = append(kept, id)
	}
	e.order = kept
}

// Package worker provides the bounded goroutine pool used for background
// jobs. Background work is submitted here rather than started with a bare go
// statement so that shutdown can wait for it.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"fibernet/internal/pkg/logger"
)

// ErrPoolClosed is returned when submitting to a released pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// DefaultSize is the pool capacity used when Config.Size is not positive.
const DefaultSize = 4

// Task is a context-aware unit of work.
type Task func(ctx context.Context)

// Config configures a Pool.
type Config struct {
	Name string
	Size int
	// Logger receives panic reports; the global logger is used when nil.
	Logger *zap.Logger
}

// Pool wraps ants.Pool with context-aware submission.
type Pool struct {
	pool *ants.Pool
	name string
	log  *zap.Logger

	// serviceCtx is the pool lifecycle context handed to detached tasks.
	serviceCtx    context.Context
	serviceCancel context.CancelFunc
}

// New creates a pool whose detached tasks are canceled when ctx ends or the
// pool shuts down.
func New(ctx context.Context, cfg Config) (*Pool, error) {
	size := cfg.Size
	if size <= 0 {
		size = DefaultSize
	}
	name := cfg.Name
	if name == "" {
		name = "general"
	}
	log := cfg.Logger
	if log == nil {
		log = logger.L()
	}
	log = log.With(zap.String("pool", name))

	serviceCtx, serviceCancel := context.WithCancel(ctx)
	p, err := ants.NewPool(size,
		ants.WithPanicHandler(func(r any) {
			log.Error("worker panic recovered", zap.Any("panic", r), zap.Stack("stack"))
		}),
		ants.WithNonblocking(false),
		ants.WithExpiryDuration(10*time.Second),
	)
	if err != nil {
		serviceCancel()
		return nil, err
	}
	return &Pool{pool: p, name: name, log: log, serviceCtx: serviceCtx, serviceCancel: serviceCancel}, nil
}

// Submit runs task with the caller's context. A context canceled before the
// task starts skips it.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.submit(func() {
		if err := ctx.Err(); err != nil {
			p.log.Debug("task skipped: context canceled", zap.Error(err))
			return
		}
		task(ctx)
	})
}

// SubmitDetached runs task with the pool lifecycle context so it survives the
// submitting request but still observes shutdown.
func (p *Pool) SubmitDetached(task Task) error {
	return p.submit(func() {
		if p.serviceCtx.Err() != nil {
			p.log.Debug("detached task skipped: pool shutting down")
			return
		}
		task(p.serviceCtx)
	})
}

func (p *Pool) submit(fn func()) error {
	if err := p.pool.Submit(fn); err != nil {
		if errors.Is(err, ants.ErrPoolClosed) {
			return ErrPoolClosed
		}
		return err
	}
	return nil
}

// Shutdown cancels detached tasks and waits up to timeout for running ones.
func (p *Pool) Shutdown(timeout time.Duration) error {
	p.serviceCancel()
	if err := p.pool.ReleaseTimeout(timeout); err != nil {
		p.log.Warn("pool shutdown timeout", zap.Error(err))
		return err
	}
	return nil
}

// Stats reports pool occupancy.
type Stats struct {
	Name    string `json:"name"`
	Running int    `json:"running"`
	Free    int    `json:"free"`
	Cap     int    `json:"cap"`
}

// Stats returns the current pool occupancy.
func (p *Pool) Stats() Stats {
	return Stats{Name: p.name, Running: p.pool.Running(), Free: p.pool.Free(), Cap: p.pool.Cap()}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"fibernet/internal/api"
	"fibernet/internal/blob"
	"fibernet/internal/config"
	"fibernet/internal/core"
	"fibernet/internal/export"
	"fibernet/internal/pkg/logger"
	"fibernet/internal/pkg/worker"
)

// application holds the composed server dependencies.
type application struct {
	cfg      *config.Config
	router   *gin.Engine
	service  *core.Service
	exporter *export.Exporter
	pool     *worker.Pool
	store    io.Closer
}

func bootstrap(ctx context.Context, cfg *config.Config) (*application, error) {
	log := logger.L()

	store, closer, err := core.OpenPersistentStore(ctx, core.StorageConfig{
		Driver:      core.StorageDriver(cfg.Storage.Driver),
		SQLitePath:  cfg.Storage.SQLitePath,
		PostgresDSN: cfg.Storage.PostgresDSN,
	}, core.NewDefaultRulesEngine())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	blobs, err := blob.Open(ctx, blob.Config{
		Driver:  blob.Driver(cfg.Blob.Driver),
		FSRoot:  cfg.Blob.FSRoot,
		BaseURL: api.PhotoPath,
		S3: blob.S3Config{
			Region:          cfg.Blob.S3.Region,
			Bucket:          cfg.Blob.S3.Bucket,
			Endpoint:        cfg.Blob.S3.Endpoint,
			AccessKeyID:     cfg.Blob.S3.AccessKeyID,
			SecretAccessKey: cfg.Blob.S3.SecretAccessKey,
			PathStyle:       cfg.Blob.S3.PathStyle,
		},
		MaxObjectSize: cfg.Blob.MaxObjectSize,
	})
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := core.NewPrometheusMetrics(reg)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	svc := core.NewService(store,
		core.WithLatency(core.Latency{
			Read:        cfg.Latency.Read,
			ClientRead:  cfg.Latency.ClientRead,
			Write:       cfg.Latency.Write,
			Lookup:      cfg.Latency.Lookup,
			FiberUpdate: cfg.Latency.FiberUpdate,
		}),
		core.WithLogger(log.Named("service")),
		core.WithMetrics(metrics),
		core.WithBlobStore(blobs),
	)

	pool, err := worker.New(ctx, worker.Config{Name: "export", Size: cfg.Worker.PoolSize, Logger: log})
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init worker pool: %w", err)
	}

	exportCfg := export.Config{Prefix: cfg.Export.Prefix, Retain: cfg.Export.Retain, Logger: log}
	if cfg.Export.Enabled {
		exportCfg.Interval = cfg.Export.Interval
	}
	exporter := export.New(svc, blobs, pool, exportCfg)

	gin.SetMode(cfg.Server.Mode)
	router := api.NewRouter(api.Options{
		Service:     svc,
		Exporter:    exporter,
		Gatherer:    reg,
		CORSOrigins: cfg.CORS.AllowedOrigins,
		Logger:      log.Named("http"),
	})

	log.Info("application bootstrapped",
		zap.String("storage", cfg.Storage.Driver),
		zap.String("blob", string(blobs.Driver())),
		zap.Strings("rules", svc.RulesEngine().Rules()),
	)
	return &application{cfg: cfg, router: router, service: svc, exporter: exporter, pool: pool, store: closer}, nil
}

// start launches background services.
func (a *application) start(ctx context.Context) {
	a.exporter.Start(ctx)
}

// shutdown stops background work and releases the store.
func (a *application) shutdown(ctx context.Context) error {
	var errs []error
	if err := a.exporter.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("stop exporter: %w", err))
	}
	timeout := a.cfg.Server.ShutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := a.pool.Shutdown(timeout); err != nil {
		errs = append(errs, fmt.Errorf("stop worker pool: %w", err))
	}
	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}

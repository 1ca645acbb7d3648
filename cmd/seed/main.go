// Command seed fills the configured inventory store with a demo network.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"fibernet/internal/config"
	"fibernet/internal/core"
	"fibernet/internal/pkg/logger"
	"fibernet/internal/seed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defaults := seed.DefaultOptions()
	configFile := flag.String("config", "", "path to a YAML config file")
	seedValue := flag.Uint64("seed", defaults.Seed, "PRNG seed")
	clients := flag.Int("clients", defaults.Clients, "number of clients")
	boxes := flag.Int("boxes", defaults.Boxes, "number of splice boxes")
	switches := flag.Int("switches", defaults.Switches, "number of switches")
	flag.Parse()

	cfg, err := config.LoadWith(config.Options{ConfigFile: *configFile})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	if cfg.Storage.Driver == string(core.StorageMemory) {
		log.Warn("seeding the memory driver; data is discarded on exit")
	}

	ctx := context.Background()
	store, closer, err := core.OpenPersistentStore(ctx, core.StorageConfig{
		Driver:      core.StorageDriver(cfg.Storage.Driver),
		SQLitePath:  cfg.Storage.SQLitePath,
		PostgresDSN: cfg.Storage.PostgresDSN,
	}, core.NewDefaultRulesEngine())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Error("close store", zap.Error(err))
		}
	}()

	svc := core.NewService(store, core.WithLatency(core.Latency{}), core.WithLogger(log.Named("service")))
	_, err = seed.Run(ctx, svc, seed.Options{
		Seed:     *seedValue,
		Clients:  *clients,
		Boxes:    *boxes,
		Switches: *switches,
	}, log)
	return err
}

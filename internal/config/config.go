// Package config loads fibernet configuration.
//
// Sources, highest priority first:
//  1. Environment variables prefixed FIBERNET_ (storage.driver -> FIBERNET_STORAGE_DRIVER)
//  2. An optional .env file, loaded into the environment without overriding it
//  3. An optional config.yaml
//  4. Defaults
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FIBERNET"

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Latency LatencyConfig `mapstructure:"latency"`
	Blob    BlobConfig    `mapstructure:"blob"`
	Export  ExportConfig  `mapstructure:"export"`
	Worker  WorkerConfig  `mapstructure:"worker"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// Mode is the gin mode: debug, release or test.
	Mode string `mapstructure:"mode"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string { return fmt.Sprintf(":%d", s.Port) }

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// StorageConfig selects the inventory store.
type StorageConfig struct {
	Driver      string `mapstructure:"driver"` // memory, sqlite or postgres
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

// LatencyConfig holds the simulated delay of each access-layer call class.
type LatencyConfig struct {
	Read        time.Duration `mapstructure:"read"`
	ClientRead  time.Duration `mapstructure:"client_read"`
	Write       time.Duration `mapstructure:"write"`
	Lookup      time.Duration `mapstructure:"lookup"`
	FiberUpdate time.Duration `mapstructure:"fiber_update"`
}

// BlobConfig selects photo and backup storage.
type BlobConfig struct {
	Driver string   `mapstructure:"driver"` // fs, memory or s3
	FSRoot string   `mapstructure:"fs_root"`
	S3     S3Config `mapstructure:"s3"`
	// MaxObjectSize caps each object kept by the memory driver, in bytes.
	// Zero disables the cap.
	MaxObjectSize int64 `mapstructure:"max_object_size"`
}

// S3Config holds S3 or MinIO settings.
type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	PathStyle       bool   `mapstructure:"path_style"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// ExportConfig controls the snapshot backup exporter.
type ExportConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
	Prefix   string        `mapstructure:"prefix"`
	Retain   int           `mapstructure:"retain"`
}

// WorkerConfig contains worker pool settings.
type WorkerConfig struct {
	PoolSize int `mapstructure:"pool_size"`
}

// CORSConfig lists origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Options tune where Load looks for files.
type Options struct {
	// ConfigFile is an explicit YAML file; when empty the default search
	// paths are used and a missing file is not an error.
	ConfigFile string
	// EnvFile is the dotenv file to load; defaults to ".env".
	EnvFile string
}

// Load reads configuration from the default locations.
func Load() (*Config, error) {
	return LoadWith(Options{})
}

// LoadWith reads configuration using explicit file locations.
func LoadWith(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/fibernet")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.mode", "release")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.sqlite_path", "fibernet.db")
	v.SetDefault("storage.postgres_dsn", "postgres://localhost/fibernet?sslmode=disable")

	v.SetDefault("latency.read", "200ms")
	v.SetDefault("latency.client_read", "100ms")
	v.SetDefault("latency.write", "300ms")
	v.SetDefault("latency.lookup", "150ms")
	v.SetDefault("latency.fiber_update", "200ms")

	v.SetDefault("blob.driver", "fs")
	v.SetDefault("blob.fs_root", "./blobdata")
	v.SetDefault("blob.max_object_size", 256<<20)
	v.SetDefault("blob.s3.bucket", "")
	v.SetDefault("blob.s3.region", "us-east-1")
	v.SetDefault("blob.s3.endpoint", "")
	v.SetDefault("blob.s3.path_style", false)
	v.SetDefault("blob.s3.access_key_id", "")
	v.SetDefault("blob.s3.secret_access_key", "")

	v.SetDefault("export.enabled", false)
	v.SetDefault("export.interval", "1h")
	v.SetDefault("export.prefix", "backups")
	v.SetDefault("export.retain", 100)

	v.SetDefault("worker.pool_size", 4)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
}

// Validate checks for configuration errors that would fail at startup.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if !slices.Contains([]string{"memory", "sqlite", "postgres"}, c.Storage.Driver) {
		errs = append(errs, fmt.Errorf("storage.driver %q must be memory, sqlite or postgres", c.Storage.Driver))
	}
	if !slices.Contains([]string{"fs", "memory", "s3"}, c.Blob.Driver) {
		errs = append(errs, fmt.Errorf("blob.driver %q must be fs, memory or s3", c.Blob.Driver))
	}
	if c.Blob.Driver == "s3" && c.Blob.S3.Bucket == "" {
		errs = append(errs, fmt.Errorf("blob.s3.bucket is required for the s3 driver"))
	}
	if c.Blob.MaxObjectSize < 0 {
		errs = append(errs, fmt.Errorf("blob.max_object_size must not be negative"))
	}
	for name, d := range map[string]time.Duration{
		"latency.read":         c.Latency.Read,
		"latency.client_read":  c.Latency.ClientRead,
		"latency.write":        c.Latency.Write,
		"latency.lookup":       c.Latency.Lookup,
		"latency.fiber_update": c.Latency.FiberUpdate,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		}
	}
	if c.Export.Enabled && c.Export.Interval <= 0 {
		errs = append(errs, fmt.Errorf("export.interval must be positive when export is enabled"))
	}
	if c.Export.Retain < 0 {
		errs = append(errs, fmt.Errorf("export.retain must not be negative"))
	}
	return errors.Join(errs...)
}

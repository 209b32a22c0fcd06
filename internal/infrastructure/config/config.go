// Package config loads runtime settings from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"

	NotifierLog   = "log"
	NotifierRedis = "redis"
)

type Config struct {
	HTTPAddr  string        `env:"HTTP_ADDR, default=127.0.0.1:8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	// BootstrapAdminPassword is only used when no "admin" account exists.
	BootstrapAdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD, default=admin123"`

	Log     LogConfig
	Storage StorageConfig
	Notify  NotifyConfig
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL,  default=info"`
	Pretty bool   `env:"LOG_PRETTY, default=false"`
}

type StorageConfig struct {
	Driver     string `env:"STORAGE_DRIVER, default=file"`
	DataDir    string `env:"DATA_DIR,       default=data"`
	SQLitePath string `env:"SQLITE_PATH"`
	MongoURI   string `env:"MONGO_URI,      default=mongodb://localhost:27017"`
	MongoDB    string `env:"MONGO_DB,       default=bugtracker"`
}

type NotifyConfig struct {
	Driver    string `env:"NOTIFIER,       default=log"`
	RedisAddr string `env:"REDIS_ADDR,     default=localhost:6379"`
	RedisDB   int    `env:"REDIS_DB,       default=0"`
	Workers   int    `env:"NOTIFY_WORKERS, default=4"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = filepath.Join(cfg.Storage.DataDir, "bugtracker.db")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case DriverFile, DriverSQLite, DriverMongo:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER %q: want file, sqlite or mongo", c.Storage.Driver))
	}
	switch c.Notify.Driver {
	case NotifierLog, NotifierRedis:
	default:
		errs = append(errs, fmt.Errorf("NOTIFIER %q: want log or redis", c.Notify.Driver))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.BootstrapAdminPassword == "" {
		errs = append(errs, errors.New("BOOTSTRAP_ADMIN_PASSWORD must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

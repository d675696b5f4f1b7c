package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

type Config struct {
	App struct {
		Name   string `envconfig:"APP_NAME" default:"Cashflow"`
		Port   int    `envconfig:"PORT" default:"8080"`
		Locale string `envconfig:"LOCALE" default:"en"`
	}

	Store struct {
		Backend    string   `envconfig:"STORE_BACKEND" default:"file"`
		DataDir    string   `envconfig:"DATA_DIR" default:"./data"`
		SQLitePath string   `envconfig:"SQLITE_PATH" default:""`
		Categories []string `envconfig:"DEFAULT_CATEGORIES" default:"Food,Transport,Entertainment,Salary"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"cashflow"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// SQLiteFile defaults to cashflow.db inside the data directory.
func (c *Config) SQLiteFile() string {
	if c.Store.SQLitePath != "" {
		return c.Store.SQLitePath
	}

	return filepath.Join(c.Store.DataDir, "cashflow.db")
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendPostgres, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q: must be one of file, postgres, sqlite, memory", c.Store.Backend)
	}

	if c.App.Port < 1 || c.App.Port > 65535 {
		return fmt.Errorf("invalid PORT %d: must be between 1 and 65535", c.App.Port)
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type pool struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
}

var (
	postgresPool = pool{maxOpen: 25, maxIdle: 5, maxLifetime: 5 * time.Minute}
	// SQLite serializes writers, so a single connection avoids SQLITE_BUSY.
	sqlitePool = pool{maxOpen: 1, maxIdle: 1}
)

// New connects to PostgreSQL through the pgx stdlib driver.
func New(connStr string) (*sql.DB, error) {
	return open("pgx", connStr, postgresPool)
}

// NewSQLite opens the SQLite file at path, creating its directory if needed.
func NewSQLite(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	return open("sqlite", path, sqlitePool)
}

func open(driver, dsn string, p pool) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s database: %w", driver, err)
	}

	db.SetMaxOpenConns(p.maxOpen)
	db.SetMaxIdleConns(p.maxIdle)
	db.SetConnMaxLifetime(p.maxLifetime)

	return db, nil
}

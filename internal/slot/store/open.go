package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/cashflow/internal/config"
	"github.com/MrJamesThe3rd/cashflow/internal/database"
	"github.com/MrJamesThe3rd/cashflow/internal/slot"
)

// Open builds the Store selected by cfg.Store.Backend. SQL backends are
// migrated before use. The returned close func releases the connection and
// is never nil.
func Open(cfg *config.Config) (slot.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case config.BackendMemory:
		return NewMemory(), noop, nil
	case config.BackendFile:
		f, err := NewFile(cfg.Store.DataDir)
		if err != nil {
			return nil, nil, err
		}

		return f, noop, nil
	case config.BackendSQLite:
		path := cfg.SQLiteFile()

		db, err := database.NewSQLite(path)
		if err != nil {
			return nil, nil, err
		}

		if err := database.MigrateSQLite(path); err != nil {
			db.Close()
			return nil, nil, err
		}

		return openSQL(db, DialectSQLite)
	case config.BackendPostgres:
		if err := database.MigratePostgres(cfg.ConnectionString()); err != nil {
			return nil, nil, err
		}

		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		return openSQL(db, DialectPostgres)
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func openSQL(db *sql.DB, dialect Dialect) (slot.Store, func() error, error) {
	s, err := NewSQL(db, dialect)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	slog.Info("opened slot store", "dialect", dialect)

	return s, db.Close, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/cashflow/internal/slot"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// SQL keeps slots as rows of the slots table created by the migrations in
// internal/database.
type SQL struct {
	db       *sql.DB
	getQuery string
	putQuery string
}

func NewSQL(db *sql.DB, dialect Dialect) (*SQL, error) {
	s := &SQL{db: db}

	switch dialect {
	case DialectPostgres:
		s.getQuery = `SELECT value FROM slots WHERE name = $1`
		s.putQuery = `
			INSERT INTO slots (name, value, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		`
	case DialectSQLite:
		s.getQuery = `SELECT value FROM slots WHERE name = ?`
		s.putQuery = `
			INSERT INTO slots (name, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`
	default:
		return nil, fmt.Errorf("unknown dialect: %s", dialect)
	}

	return s, nil
}

func (s *SQL) Get(ctx context.Context, name string) ([]byte, error) {
	var value string

	err := s.db.QueryRowContext(ctx, s.getQuery, name).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, slot.ErrNotFound
		}

		return nil, fmt.Errorf("getting slot %s: %w", name, err)
	}

	return []byte(value), nil
}

func (s *SQL) Put(ctx context.Context, name string, data []byte) error {
	if _, err := s.db.ExecContext(ctx, s.putQuery, name, string(data)); err != nil {
		return fmt.Errorf("putting slot %s: %w", name, err)
	}

	return nil
}

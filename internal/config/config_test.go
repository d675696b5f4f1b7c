package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cashflow/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Cashflow", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, config.BackendFile, cfg.Store.Backend)
	assert.Equal(t, []string{"Food", "Transport", "Entertainment", "Salary"}, cfg.Store.Categories)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, filepath.Join("data", "cashflow.db"), cfg.SQLiteFile())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/ledger.db")
	t.Setenv("DEFAULT_CATEGORIES", "食費,交通費,娯楽費,給与")
	t.Setenv("DB_NAME", "ledger")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/ledger.db", cfg.SQLiteFile())
	assert.Equal(t, []string{"食費", "交通費", "娯楽費", "給与"}, cfg.Store.Categories)
	assert.Equal(t, "postgres://postgres:@localhost:5432/ledger?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "Backend", key: "STORE_BACKEND", val: "s3"},
		{name: "Port", key: "PORT", val: "70000"},
		{name: "PortNotNumber", key: "PORT", val: "http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

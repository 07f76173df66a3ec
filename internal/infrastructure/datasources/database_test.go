package datasources

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"f1-bets.backend/internal/config"
)

func TestNewConnection_SQLiteMigrates(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		Path:        filepath.Join(t.TempDir(), "f1_test.db"),
		AutoMigrate: true,
	}

	db, err := NewConnection(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	for _, table := range []string{"usuarios", "drivers", "apuestas_top3"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	// migrating twice is harmless
	assert.NoError(t, Migrate(db))
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	_, err := NewConnection(config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewConnection_PostgresRequiresDSN(t *testing.T) {
	_, err := NewConnection(config.DatabaseConfig{Driver: config.DriverPostgres})
	assert.ErrorContains(t, err, "DB_DSN is required")
}

func TestNewConnection_PostgresDialectorBuilt(t *testing.T) {
	d, err := openDialector(config.DatabaseConfig{Driver: config.DriverPostgres, DSN: "postgres://u:p@127.0.0.1:1/x"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())
}

func TestNewConnection_OpenError(t *testing.T) {
	orig := openGorm
	t.Cleanup(func() { openGorm = orig })
	openGorm = func(gorm.Dialector, ...gorm.Option) (*gorm.DB, error) {
		return nil, errors.New("open failed")
	}

	_, err := NewConnection(config.DatabaseConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "x.db")})
	assert.ErrorContains(t, err, "failed to open database")
}

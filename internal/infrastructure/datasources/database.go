package datasources

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"f1-bets.backend/internal/config"
	"f1-bets.backend/internal/infrastructure/models"
)

var (
	openDialector = func(cfg config.DatabaseConfig) (gorm.Dialector, error) {
		switch cfg.Driver {
		case config.DriverSQLite, "":
			return sqlite.Open(cfg.URL()), nil
		case config.DriverPostgres:
			if cfg.DSN == "" {
				return nil, fmt.Errorf("DB_DSN is required for driver %q", cfg.Driver)
			}
			return postgres.New(postgres.Config{DSN: cfg.DSN, PreferSimpleProtocol: true}), nil
		default:
			return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
		}
	}
	openGorm = gorm.Open
)

// NewConnection opens the store, checks it answers and optionally migrates the schema
func NewConnection(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := openGorm(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get generic database object: %w", err)
	}
	if cfg.Driver != config.DriverPostgres {
		// SQLite has a single writer; one connection avoids SQLITE_BUSY between pooled writers.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}
	return db, nil
}

// Migrate creates or extends usuarios, drivers and apuestas_top3
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver) and PostgreSQL, plus schema migrations.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tbourn/depicts-backend/internal/domain"
)

// Supported DB_DRIVER values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// sqlitePragmas are applied through the DSN so every pooled connection gets
// them, not only the one that happened to run a PRAGMA statement.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
	"foreign_keys(1)",
	"busy_timeout(5000)",
}

// Open dispatches to OpenSQLite or OpenPostgres based on driver.
func Open(driver, dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSQLite:
		return OpenSQLite(dsn, cfg)
	case DriverPostgres:
		return OpenPostgres(dsn, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// OpenSQLite opens (or creates) a SQLite database with WAL, foreign keys and
// a busy timeout enabled on every connection.
func OpenSQLite(path string, cfg *gorm.Config) (*gorm.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path must not be empty")
	}
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if _, err := os.Stat(dir); err != nil {
				return nil, err
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(sqliteDSN(path)), orDefault(cfg))
	if err != nil {
		return nil, err
	}
	tunePool(db, 10)
	return db, nil
}

// OpenPostgres opens a PostgreSQL database using a libpq-style or URL DSN.
func OpenPostgres(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn must not be empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), orDefault(cfg))
	if err != nil {
		return nil, err
	}
	tunePool(db, 25)
	return db, nil
}

// AutoMigrate creates or updates every table of the depicts schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Language{},
		&domain.User{},
		&domain.ArtworkItem{},
		&domain.DepictsItem{},
		&domain.DepictsItemAltLabel{},
		&domain.HumanItem{},
		&domain.Edit{},
		&domain.WikidataQuery{},
	)
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	var b strings.Builder
	b.WriteString(path)
	for _, p := range sqlitePragmas {
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(p)
		sep = "&"
	}
	return b.String()
}

func tunePool(db *gorm.DB, maxOpen int) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(maxOpen)
		sqlDB.SetMaxIdleConns(maxOpen)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
}

func orDefault(cfg *gorm.Config) *gorm.Config {
	if cfg == nil {
		return &gorm.Config{}
	}
	return cfg
}

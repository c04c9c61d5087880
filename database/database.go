package database

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Driver string

const (
	SQLite   Driver = "sqlite"
	Postgres Driver = "postgres"
)

// Config selects the storage backend. An empty Path with the SQLite driver opens a
// private in-memory database.
type Config struct {
	Driver Driver
	Path   string // SQLite file
	DSN    string // Postgres connection string
}

func Memory() Config {
	return Config{Driver: SQLite}
}

// Open connects to the configured database and verifies the connection
func Open(cfg Config, log zerolog.Logger) (db *gorm.DB, err error) {
	var (
		gcfg = &gorm.Config{
			SkipDefaultTransaction: true,
			Logger:                 logger.Default.LogMode(logger.Silent),
		}
		memory bool
	)
	switch Driver(strings.ToLower(string(cfg.Driver))) {
	case Postgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires a dsn")
		}
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		}), gcfg)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		log.Info().Msg("using postgres database")
	case SQLite, "":
		path := cfg.Path
		if path == "" {
			path, memory = "file::memory:", true
		}
		db, err = gorm.Open(sqlite.Open(path), gcfg)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite %q: %w", path, err)
		}
		log.Info().Str("path", path).Msg("using sqlite database")
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("accessing sql interface: %w", err)
	}
	if memory {
		// every pooled connection to file::memory: would see its own empty database
		sqlDB.SetMaxOpenConns(1)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("validating connection: %w", err)
	}
	return db, nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// Registers the pure-Go "sqlite" driver used below.
	_ "modernc.org/sqlite"
)

// IsPostgres reports whether dsn points at PostgreSQL.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Connect opens dsn: PostgreSQL for postgres URLs, SQLite for anything else
// (a file path or ":memory:"). quiet silences gorm's SQL log.
func Connect(dsn string, quiet bool) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	if quiet {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	if IsPostgres(dsn) {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

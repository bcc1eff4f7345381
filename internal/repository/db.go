package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Schema creates the generation_events table when it does not exist yet.
const Schema = `CREATE TABLE IF NOT EXISTS generation_events (
	id         BIGINT AUTO_INCREMENT PRIMARY KEY,
	length     INT NOT NULL,
	upper      BOOLEAN NOT NULL,
	lower      BOOLEAN NOT NULL,
	digits     BOOLEAN NOT NULL,
	symbols    BOOLEAN NOT NULL,
	strength   INT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	INDEX idx_generation_events_created_at (created_at)
)`

// dsnConfig parses dsn and turns on parseTime, which the TIMESTAMP scans
// into time.Time depend on.
func dsnConfig(dsn string) (*mysql.Config, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database DSN: %w", err)
	}
	cfg.ParseTime = true
	return cfg, nil
}

// NewDB creates a new MySQL database connection pool with the given DSN.
// The pool is returned only when the server answers a ping.
func NewDB(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := dsnConfig(dsn)
	if err != nil {
		return nil, err
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, err
	}
	db := sql.OpenDB(connector)

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// Migrate applies Schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("creating generation_events: %w", err)
	}
	slog.Debug("schema ready", "table", "generation_events")
	return nil
}

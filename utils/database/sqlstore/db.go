// Package sqlstore implements the record stores on sqlx. One code path serves sqlite
// (mattn/go-sqlite3) and postgres (pgx stdlib); only the schema differs per dialect.
package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"community-bot/monitoring"
	"community-bot/utils/database"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// Clock returns the current time.
type Clock func() time.Time

// ParseURL maps a DATABASE_URL onto a driver name, driver DSN and backend name.
func ParseURL(url string) (driver, dsn, backend string, err error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "pgx", url, database.BackendPostgres, nil
	case strings.HasPrefix(url, "sqlite://"):
		return "sqlite3", strings.TrimPrefix(url, "sqlite://"), database.BackendSQLite, nil
	case strings.HasPrefix(url, "file:"), strings.HasSuffix(url, ".db"), strings.HasSuffix(url, ".sqlite"):
		return "sqlite3", url, database.BackendSQLite, nil
	}
	return "", "", "", fmt.Errorf("unsupported database url %q", url)
}

// Connect opens the database behind url and makes sure the schema exists.
func Connect(ctx context.Context, url string) (*sqlx.DB, string, error) {
	driver, dsn, backend, err := ParseURL(url)
	if err != nil {
		return nil, "", err
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to connect to database: %w", err)
	}
	if backend == database.BackendSQLite {
		// sqlite serialises writers anyway; one connection avoids "database is locked".
		db.SetMaxOpenConns(1)
	}

	if err := Init(ctx, db, backend); err != nil {
		db.Close()
		return nil, "", err
	}
	return db, backend, nil
}

// Init creates all tables and applies additive column migrations.
func Init(ctx context.Context, db *sqlx.DB, backend string) error {
	schema := sqliteSchema
	if backend == database.BackendPostgres {
		schema = postgresSchema
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	// Add new columns if they don't exist (for migration from old schema)
	for _, stmt := range migrations {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column name") && !strings.Contains(err.Error(), "already exists") {
			return fmt.Errorf("failed to execute ALTER statement %s: %w", stmt, err)
		}
	}
	return nil
}

// New builds the record stores on top of an initialised db. Sessions are not SQL backed and
// are left for the caller to fill in.
func New(db *sqlx.DB, backend string, now Clock) *database.Stores {
	if now == nil {
		now = time.Now
	}
	s := database.NewStores(backend, db.PingContext, db.Close)
	base := store{db: db, backend: backend, now: now}
	s.Tickets = &TicketStore{base}
	s.Settings = &SettingsStore{base}
	s.TicketLogs = &TicketLogStore{base}
	s.Templates = &TemplateStore{base}
	s.SentEmbeds = &SentEmbedStore{base}
	s.Warnings = &WarningStore{base}
	return s
}

type store struct {
	db      *sqlx.DB
	backend string
	now     Clock
}

func (s store) observe(name, query string) func() {
	return monitoring.ObserveStore(s.backend, name, query)
}

// utc normalises timestamps so both drivers round-trip the same value.
func (s store) utc() time.Time {
	return s.now().UTC()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode json column: %w", err)
	}
	return string(b), nil
}

func decodeJSON(raw string, v any) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("failed to decode json column: %w", err)
	}
	return nil
}

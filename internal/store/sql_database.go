// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-newsroom/internal/config"
	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/migrations"
)

// DB is a database/sql connection together with the dialect specifics the
// repositories need: placeholder format, row locking and error classification.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database named by cfg.DSN. PostgreSQL URLs and
// keyword DSNs go to pgx, everything that looks like a SQLite file goes to
// go-sqlite3.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch dsnDialect(cfg.DSN) {
	case migrations.DialectPostgres:
		return NewConnectPostgres(ctx, cfg.DSN, log)
	case migrations.DialectSQLite:
		return NewConnectSQLite(ctx, cfg.DSN, log)
	default:
		log.Error().Str("func", "NewConnect").Msg("unsupported database dsn")
		return nil, ErrUnsupportedDSN
	}
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate() error {
	if err := migrations.Migrate(db.DB, db.Dialect()); err != nil {
		db.logger.Err(err).Str("func", "*DB.Migrate").Str("dialect", db.Dialect()).Msg("error applying migrations")
		return err
	}

	db.logger.Info().Str("func", "*DB.Migrate").Str("dialect", db.Dialect()).Msg("migrations applied")
	return nil
}

// Dialect returns the goose dialect name of the connection.
func (db *DB) Dialect() string {
	return db.dialect
}

// lockRows reports whether SELECT ... FOR UPDATE is available. SQLite has
// no row locks; its transactions take the write lock at BEGIN instead.
func (db *DB) lockRows() bool {
	return db.Dialect() == migrations.DialectPostgres
}

func newDB(conn *sql.DB, dialect string, log *logger.Logger) *DB {
	db := &DB{
		DB:      conn,
		dialect: dialect,
		logger:  log,
	}

	switch dialect {
	case migrations.DialectPostgres:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.errorClassificator = NewPostgresErrorClassifier()
	default:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
		db.errorClassificator = NewSQLiteErrorClassifier()
	}

	return db
}

func dsnDialect(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	lower := strings.ToLower(dsn)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"),
		strings.Contains(lower, "host=") && strings.Contains(lower, "dbname="):
		return migrations.DialectPostgres
	case strings.HasPrefix(lower, "sqlite://"), strings.HasPrefix(lower, "sqlite3://"),
		strings.HasPrefix(lower, "file:"), lower == ":memory:",
		strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"), strings.HasSuffix(lower, ".sqlite3"):
		return migrations.DialectSQLite
	default:
		return ""
	}
}

func pingDB(ctx context.Context, conn *sql.DB, funcName string, log *logger.Logger) error {
	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", funcName).Msg("error connecting database (ping)")
		conn.Close()
		return fmt.Errorf("error connecting database: %w", err)
	}

	return nil
}

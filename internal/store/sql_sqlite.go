// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/migrations"
)

// sqliteDefaults are forced on every SQLite DSN. _txlock=immediate makes
// BEGIN take the database write lock, which is what serialises concurrent
// read-modify-write transactions on the same account.
var sqliteDefaults = map[string]string{
	"_txlock":       "immediate",
	"_busy_timeout": "5000",
	"_foreign_keys": "1",
}

func NewConnectSQLite(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	normalized, err := sqliteDSN(dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("invalid sqlite dsn")
		return nil, err
	}

	conn, err := sql.Open("sqlite3", normalized)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// one writer at a time anyway; a single connection also keeps
	// in-memory databases shared across calls
	conn.SetMaxOpenConns(1)

	if err = pingDB(ctx, conn, "NewConnectSQLite", log); err != nil {
		return nil, err
	}
	log.Info().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return newDB(conn, migrations.DialectSQLite, log), nil
}

// sqliteDSN turns "sqlite://path", "file:path?..." or a bare path into a
// go-sqlite3 "file:" DSN carrying [sqliteDefaults].
func sqliteDSN(dsn string) (string, error) {
	dsn = strings.TrimSpace(dsn)
	for _, prefix := range []string{"sqlite3://", "sqlite://", "file:"} {
		if len(dsn) >= len(prefix) && strings.EqualFold(dsn[:len(prefix)], prefix) {
			dsn = dsn[len(prefix):]
			break
		}
	}

	path, rawQuery, _ := strings.Cut(dsn, "?")
	if path == "" {
		return "", fmt.Errorf("%w: empty sqlite path", ErrUnsupportedDSN)
	}

	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnsupportedDSN, err)
	}
	for key, value := range sqliteDefaults {
		params.Set(key, value)
	}

	return "file:" + path + "?" + params.Encode(), nil
}

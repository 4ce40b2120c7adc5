// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-newsroom/models"
)

var accountsTable = models.Account{}.TableName()

// accountColumns is the column order of every SELECT; scanAccount depends on it.
var accountColumns = []string{
	"id",
	"email",
	"first_name",
	"last_name",
	"photo",
	"role_id",
	"secret_hash",
	"failed_attempts",
	"locked_until",
	"reset_token_hash",
	"reset_token_expiry",
	"created_at",
}

// buildInsertAccountQuery returns only the new id: SQLite reports no column
// types for RETURNING, so timestamps are read back with a regular SELECT.
func buildInsertAccountQuery(sb sq.StatementBuilderType, account models.Account) (string, []any, error) {
	return sb.Insert(accountsTable).
		Columns("email", "first_name", "last_name", "photo", "role_id", "secret_hash").
		Values(account.Email, account.FirstName, account.LastName, account.Photo, int64(account.Role), account.SecretHash).
		Suffix("RETURNING id").
		ToSql()
}

// buildSelectAccountQuery selects one account. With forUpdate the row lock
// is requested (PostgreSQL only).
func buildSelectAccountQuery(sb sq.StatementBuilderType, where sq.Eq, forUpdate bool) (string, []any, error) {
	query := sb.Select(accountColumns...).
		From(accountsTable).
		Where(where).
		Limit(1)

	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	return query.ToSql()
}

// buildUpdateAccountQuery writes back every mutable column of the account.
func buildUpdateAccountQuery(sb sq.StatementBuilderType, account models.Account) (string, []any, error) {
	return sb.Update(accountsTable).
		Set("email", account.Email).
		Set("first_name", account.FirstName).
		Set("last_name", account.LastName).
		Set("photo", account.Photo).
		Set("role_id", int64(account.Role)).
		Set("secret_hash", account.SecretHash).
		Set("failed_attempts", account.FailedAttempts).
		Set("locked_until", nullTime(account.LockedUntil)).
		Set("reset_token_hash", nullString(account.ResetTokenHash)).
		Set("reset_token_expiry", nullTime(account.ResetTokenExpiry)).
		Where(sq.Eq{"id": account.AccountID}).
		ToSql()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanAccount reads a row in accountColumns order. Driver errors, including
// sql.ErrNoRows, are returned unwrapped for the caller to classify.
func scanAccount(row rowScanner) (models.Account, error) {
	var (
		account                  models.Account
		role                     int64
		lockedUntil, resetExpiry sql.NullTime
		resetHash                sql.NullString
	)

	err := row.Scan(
		&account.AccountID,
		&account.Email,
		&account.FirstName,
		&account.LastName,
		&account.Photo,
		&role,
		&account.SecretHash,
		&account.FailedAttempts,
		&lockedUntil,
		&resetHash,
		&resetExpiry,
		&account.CreatedAt,
	)
	if err != nil {
		return models.Account{}, err
	}

	account.Role = models.Role(role)
	account.CreatedAt = account.CreatedAt.UTC()
	if lockedUntil.Valid {
		account.LockedUntil = lockedUntil.Time.UTC()
	}
	if resetHash.Valid {
		account.ResetTokenHash = resetHash.String
	}
	if resetExpiry.Valid {
		account.ResetTokenExpiry = resetExpiry.Time.UTC()
	}

	return account, nil
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/models"
)

// maxTxAttempts bounds retries of a read-modify-write transaction that
// failed with a retryable driver error.
const maxTxAttempts = 3

// accountRepository is the database/sql implementation of [AccountRepository]
// for both PostgreSQL and SQLite.
//
// Every method obtains a context-scoped logger via [logger.FromContext] so
// that database interactions carry the request trace id. Secrets, hashes
// and reset token digests are never logged.
type accountRepository struct {
	*DB
	logger *logger.Logger
}

// NewAccountRepository constructs an [AccountRepository] backed by db.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateAccount implements [AccountRepository]. The new row is read back so
// the caller receives the canonical database representation.
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertAccountQuery(r.builder, account)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("failed to build query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var accountID int64
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&accountID); err != nil {
		if r.errorClassificator.IsUniqueViolation(err) {
			log.Warn().Str("func", "*accountRepository.CreateAccount").Msg("email already exists")
			return models.Account{}, ErrEmailAlreadyExists
		}

		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("failed to insert account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Info().
		Str("func", "*accountRepository.CreateAccount").
		Int64("account_id", accountID).
		Msg("account created")

	return r.FindAccountByID(ctx, accountID)
}

func (r *accountRepository) FindAccountByID(ctx context.Context, accountID int64) (models.Account, error) {
	return r.findAccount(ctx, sq.Eq{"id": accountID}, "*accountRepository.FindAccountByID")
}

func (r *accountRepository) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	return r.findAccount(ctx, sq.Eq{"email": email}, "*accountRepository.FindAccountByEmail")
}

func (r *accountRepository) FindAccountByResetToken(ctx context.Context, tokenHash string) (models.Account, error) {
	return r.findAccount(ctx, sq.Eq{"reset_token_hash": tokenHash}, "*accountRepository.FindAccountByResetToken")
}

func (r *accountRepository) UpdateAccountByID(ctx context.Context, accountID int64, mutate AccountMutation) (models.Account, error) {
	return r.updateAccount(ctx, sq.Eq{"id": accountID}, mutate, "*accountRepository.UpdateAccountByID")
}

func (r *accountRepository) UpdateAccountByEmail(ctx context.Context, email string, mutate AccountMutation) (models.Account, error) {
	return r.updateAccount(ctx, sq.Eq{"email": email}, mutate, "*accountRepository.UpdateAccountByEmail")
}

func (r *accountRepository) UpdateAccountByResetToken(ctx context.Context, tokenHash string, mutate AccountMutation) (models.Account, error) {
	return r.updateAccount(ctx, sq.Eq{"reset_token_hash": tokenHash}, mutate, "*accountRepository.UpdateAccountByResetToken")
}

func (r *accountRepository) findAccount(ctx context.Context, where sq.Eq, funcName string) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAccountQuery(r.builder, where, false)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to build query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	account, err := scanAccount(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug().Str("func", funcName).Msg("account not found")
			return models.Account{}, ErrAccountNotFound
		}

		log.Err(err).Str("func", funcName).Msg("failed to select account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return account, nil
}

// updateAccount retries the whole transaction on retryable driver errors.
// mutate may therefore run more than once; it always sees the freshly
// locked row.
func (r *accountRepository) updateAccount(ctx context.Context, where sq.Eq, mutate AccountMutation, funcName string) (models.Account, error) {
	log := logger.FromContext(ctx)

	if mutate == nil {
		return models.Account{}, ErrNilMutation
	}

	var lastErr error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		account, mutationErr, err := r.updateAccountTx(ctx, where, mutate, funcName)
		if err == nil {
			return account, mutationErr
		}

		lastErr = err
		if r.errorClassificator.Classify(err) != Retryable || ctx.Err() != nil {
			break
		}

		log.Warn().
			Str("func", funcName).
			Int("attempt", attempt).
			Msg("retryable database error, restarting transaction")
	}

	return models.Account{}, lastErr
}

// updateAccountTx is one attempt of updateAccount. The third return value
// is a storage failure; the second one is whatever mutate reported.
func (r *accountRepository) updateAccountTx(ctx context.Context, where sq.Eq, mutate AccountMutation, funcName string) (models.Account, error, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to begin transaction")
		return models.Account{}, nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := buildSelectAccountQuery(r.builder, where, r.lockRows())
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to build select query")
		return models.Account{}, nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	account, err := scanAccount(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug().Str("func", funcName).Msg("account not found")
			return models.Account{}, nil, ErrAccountNotFound
		}

		log.Err(err).Str("func", funcName).Msg("failed to select account for update")
		return models.Account{}, nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	before := account
	mutationErr := mutate(&account)
	account.AccountID = before.AccountID
	account.CreatedAt = before.CreatedAt

	if account != before {
		query, args, err = buildUpdateAccountQuery(r.builder, account)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("failed to build update query")
			return models.Account{}, nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", funcName).
				Int64("account_id", account.AccountID).
				Msg("failed to update account")
			if r.errorClassificator.IsUniqueViolation(err) {
				return models.Account{}, nil, ErrEmailAlreadyExists
			}
			return models.Account{}, nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", funcName).
			Int64("account_id", account.AccountID).
			Msg("failed to commit transaction")
		return models.Account{}, nil, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Debug().
		Str("func", funcName).
		Int64("account_id", account.AccountID).
		Bool("changed", account != before).
		Msg("account transaction committed")

	return account, mutationErr, nil
}

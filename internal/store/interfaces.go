// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-newsroom/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/account_repository_mock.go -package=mock

// AccountMutation edits an account inside a row-locked transaction.
//
// The repository writes the account back only if the mutation changed it,
// then commits. The mutation's error is returned to the caller after the
// commit, so a mutation may both change state and report a domain failure
// (a wrong password increments the counter and still fails the login).
type AccountMutation func(account *models.Account) error

// AccountRepository is the transactional account store of the
// authentication core.
type AccountRepository interface {
	// CreateAccount inserts a new account and returns it with server-assigned
	// fields. A taken email yields [ErrEmailAlreadyExists].
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)

	FindAccountByID(ctx context.Context, accountID int64) (models.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (models.Account, error)
	// FindAccountByResetToken looks an account up by the digest of its
	// pending reset token.
	FindAccountByResetToken(ctx context.Context, tokenHash string) (models.Account, error)

	// UpdateAccountByID is UpdateAccountByEmail keyed by the account id.
	// A mutation that takes an email already in use yields
	// [ErrEmailAlreadyExists].
	UpdateAccountByID(ctx context.Context, accountID int64, mutate AccountMutation) (models.Account, error)

	// UpdateAccountByEmail runs mutate on the account with the given email
	// while holding its row lock. Returns [ErrAccountNotFound] without
	// calling mutate when no account matches.
	UpdateAccountByEmail(ctx context.Context, email string, mutate AccountMutation) (models.Account, error)

	// UpdateAccountByResetToken is UpdateAccountByEmail keyed by the reset
	// token digest.
	UpdateAccountByResetToken(ctx context.Context, tokenHash string, mutate AccountMutation) (models.Account, error)
}

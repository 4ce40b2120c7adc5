// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, HTTP client initialization, session token issuing
// and validation, and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-newsroom/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// AccountIDCtxKey is the key used to store the authenticated account identifier.
	AccountIDCtxKey = contextKey("accountID")
	// AccountCtxKey is the key used to store the authenticated [models.Account].
	AccountCtxKey = contextKey("account")
)

// WithAccount returns a copy of ctx carrying the authenticated account and its ID.
func WithAccount(ctx context.Context, account models.Account) context.Context {
	ctx = context.WithValue(ctx, AccountIDCtxKey, account.AccountID)
	return context.WithValue(ctx, AccountCtxKey, account)
}

// GetAccountIDFromContext retrieves the account identifier from the context.
//
// Returns ok == false when the value is missing or has an unexpected type.
func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(int64)
	return accountID, ok
}

// GetAccountFromContext retrieves the authenticated account from the context.
func GetAccountFromContext(ctx context.Context) (models.Account, bool) {
	account, ok := ctx.Value(AccountCtxKey).(models.Account)
	return account, ok
}

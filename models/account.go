// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Account is a registered newsroom user together with the credential state
// maintained by the authentication core.
//
// All fields are comparable so that repositories can detect whether a
// mutation actually changed the record before writing it back.
type Account struct {
	// AccountID is the stable numeric identifier of the account.
	AccountID int64 `json:"id"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// FirstName and LastName are display attributes.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Photo is an optional file name of the profile picture.
	Photo string `json:"photo,omitempty"`

	// Role is the capability tag consumed by downstream authorization.
	Role Role `json:"role_id"`

	// SecretHash is the encoded salted Argon2id hash of the current password.
	// Never serialised.
	SecretHash string `json:"-"`

	// FailedAttempts counts consecutive wrong passwords since the last
	// success or lock. Always below the lockout threshold.
	FailedAttempts int `json:"-"`

	// LockedUntil blocks every login attempt while it lies in the future.
	// The zero value means no lock was ever imposed or it was cleared.
	LockedUntil time.Time `json:"-"`

	// ResetTokenHash is the keyed digest of the pending password reset token;
	// empty when no reset is pending.
	ResetTokenHash string `json:"-"`

	// ResetTokenExpiry is the instant after which ResetTokenHash is rejected.
	ResetTokenExpiry time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// Summary returns the public projection of the account.
func (a Account) Summary() AccountSummary {
	return AccountSummary{
		AccountID: a.AccountID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Photo:     a.Photo,
		Role:      a.Role,
	}
}

// HasPendingReset reports whether a reset token is stored for the account.
func (a Account) HasPendingReset() bool {
	return a.ResetTokenHash != ""
}

// AccountSummary is the part of an account that is safe to return to clients.
type AccountSummary struct {
	AccountID int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Photo     string `json:"photo,omitempty"`
	Role      Role   `json:"role_id"`
}

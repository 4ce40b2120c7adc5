// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-newsroom/internal/lockout"
	"github.com/MKhiriev/go-newsroom/internal/utils"
)

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrUnknownAccount is returned by Login when no account has the email.
	ErrUnknownAccount = errors.New("unknown account")

	// ErrInvalidSecret and ErrAccountLocked are the sentinels behind
	// *InvalidSecretError and *AccountLockedError.
	ErrInvalidSecret = lockout.ErrInvalidSecret
	ErrAccountLocked = lockout.ErrLocked

	ErrSecretHashingFailed   = errors.New("secret hashing failed")
	ErrAdminSelfRegistration = errors.New("admin accounts can not be self-registered")

	// Session token errors.
	ErrBadSignature        = utils.ErrBadSignature
	ErrSessionExpired      = utils.ErrTokenExpired
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrAccountNotFound is returned when a valid session token names an
	// account that no longer exists.
	ErrAccountNotFound = errors.New("account not found")

	// Password reset token errors.
	ErrTokenInvalid = errors.New("reset token is invalid")
	ErrTokenExpired = errors.New("reset token has expired")
)

// InvalidSecretError carries the number of attempts left before the
// account is locked.
type InvalidSecretError = lockout.InvalidSecretError

// AccountLockedError carries the time until the lock is lifted.
type AccountLockedError = lockout.LockedError

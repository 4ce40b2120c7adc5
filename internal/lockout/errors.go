// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package lockout

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrLocked        = errors.New("account is locked")
	ErrInvalidSecret = errors.New("invalid secret")
)

// LockedError carries the time left until the lock expires.
type LockedError struct {
	RetryAfter time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrLocked, e.RetryAfter)
}

func (e *LockedError) Unwrap() error {
	return ErrLocked
}

// InvalidSecretError carries the number of failures left before a lock.
type InvalidSecretError struct {
	AttemptsRemaining int
}

func (e *InvalidSecretError) Error() string {
	return fmt.Sprintf("%s: %d attempts remaining", ErrInvalidSecret, e.AttemptsRemaining)
}

func (e *InvalidSecretError) Unwrap() error {
	return ErrInvalidSecret
}

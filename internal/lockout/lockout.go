// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package lockout implements the bounded failure counter and cooldown window
// that guards credential verification.
//
// The package is pure: every transition takes the current instant
// explicitly and returns the next [State]. Persisting the state atomically
// with the decision is the caller's job.
package lockout

import "time"

// Reference policy values.
const (
	DefaultThreshold = 3
	DefaultDuration  = 15 * time.Minute
)

// DefaultPolicy locks an account for 15 minutes after 3 consecutive failures.
var DefaultPolicy = Policy{Threshold: DefaultThreshold, Duration: DefaultDuration}

// Policy describes when an account is locked and for how long.
type Policy struct {
	Threshold int
	Duration  time.Duration
}

// State is the persisted part of the lockout machine.
// A zero LockedUntil means the account was never locked.
type State struct {
	FailedAttempts int
	LockedUntil    time.Time
}

// Locked reports whether the state blocks verification at now.
func (s State) Locked(now time.Time) bool {
	return now.Before(s.LockedUntil)
}

// Check returns a *LockedError while the lock is active. An expired lock is
// left in place; the next outcome decides what happens to it.
func (p Policy) Check(s State, now time.Time) error {
	if s.Locked(now) {
		return &LockedError{RetryAfter: s.LockedUntil.Sub(now)}
	}

	return nil
}

// Fail records a failed verification.
//
// Reaching the threshold imposes a new lock and resets the counter in the
// same step, returning *LockedError. Otherwise the incremented counter is
// returned with *InvalidSecretError.
func (p Policy) Fail(s State, now time.Time) (State, error) {
	attempts := s.FailedAttempts + 1
	if attempts >= p.Threshold {
		return State{LockedUntil: now.Add(p.Duration)}, &LockedError{RetryAfter: p.Duration}
	}

	return State{FailedAttempts: attempts, LockedUntil: s.LockedUntil},
		&InvalidSecretError{AttemptsRemaining: p.Threshold - attempts}
}

// Succeed records a successful verification.
func (p Policy) Succeed(State) State {
	return State{}
}

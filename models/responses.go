// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	Account     AccountSummary `json:"account"`
}

// MessageResponse carries a human-readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`

	// AttemptsRemaining is set when a wrong password was supplied.
	AttemptsRemaining *int `json:"attempts_remaining,omitempty"`

	// RetryAfterSeconds is set when the account is locked.
	RetryAfterSeconds *int64 `json:"retry_after_seconds,omitempty"`
}

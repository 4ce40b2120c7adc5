// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the authentication core of the newsroom server:
// credential verification with lockout, session tokens and the password
// reset flow.
package service

import (
	"context"

	"github.com/MKhiriev/go-newsroom/models"
)

// AuthService registers accounts, verifies credentials and handles session
// tokens.
type AuthService interface {
	// Register creates an account with a hashed secret and queues the
	// welcome mail.
	Register(ctx context.Context, request models.RegisterRequest) (models.Account, error)

	// Login verifies the credentials under the lockout policy. The whole
	// decision and its state change happen in one row-locked transaction.
	Login(ctx context.Context, request models.LoginRequest) (models.Account, error)

	// CreateToken issues a session token for the account.
	CreateToken(ctx context.Context, account models.Account) (models.Token, error)

	// ParseToken verifies a session token without touching the store.
	ParseToken(ctx context.Context, tokenString string) (models.Claims, error)

	// Authenticate verifies a session token and loads its account.
	Authenticate(ctx context.Context, tokenString string) (models.Account, error)

	// UpdateProfile replaces the names, email and optionally the photo of
	// the account. Credential and lockout state are left untouched.
	UpdateProfile(ctx context.Context, accountID int64, request models.UpdateProfileRequest) (models.Account, error)
}

// PasswordResetService drives the NoResetPending -> ResetRequested ->
// Consumed | Expired state machine.
type PasswordResetService interface {
	// RequestReset stores a new reset token for a known email and queues the
	// reset mail. Unknown emails are not reported.
	RequestReset(ctx context.Context, request models.PasswordResetRequest) error

	// CheckToken reports whether a reset token would currently be accepted.
	CheckToken(ctx context.Context, token string) error

	// ConfirmReset consumes a reset token and replaces the secret.
	ConfirmReset(ctx context.Context, request models.PasswordResetConfirm) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// MailQueue accepts messages for background delivery. Enqueue never blocks;
// it reports false when the message was dropped.
type MailQueue interface {
	Enqueue(message models.MailMessage) bool
}

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// logging or validating.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// PasswordResetServiceWrapper is AuthServiceWrapper for PasswordResetService.
type PasswordResetServiceWrapper interface {
	Wrap(PasswordResetService) PasswordResetService
}

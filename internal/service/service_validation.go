// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/internal/validators"
	"github.com/MKhiriev/go-newsroom/models"
)

// AuthValidationService checks requests with an AccountValidator before
// passing them to the wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewAccountValidator(),
	}
}

func (v *AuthValidationService) Register(ctx context.Context, request models.RegisterRequest) (models.Account, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Register(ctx, request)
}

func (v *AuthValidationService) Login(ctx context.Context, request models.LoginRequest) (models.Account, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Login(ctx, request)
}

func (v *AuthValidationService) CreateToken(ctx context.Context, account models.Account) (models.Token, error) {
	return v.inner.CreateToken(ctx, account)
}

func (v *AuthValidationService) ParseToken(ctx context.Context, tokenString string) (models.Claims, error) {
	return v.inner.ParseToken(ctx, tokenString)
}

func (v *AuthValidationService) Authenticate(ctx context.Context, tokenString string) (models.Account, error) {
	return v.inner.Authenticate(ctx, tokenString)
}

func (v *AuthValidationService) UpdateProfile(ctx context.Context, accountID int64, request models.UpdateProfileRequest) (models.Account, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateProfile(ctx, accountID, request)
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}

// PasswordResetValidationService is AuthValidationService for
// PasswordResetService.
type PasswordResetValidationService struct {
	inner     PasswordResetService
	validator validators.Validator
}

func NewPasswordResetValidationService() PasswordResetServiceWrapper {
	return &PasswordResetValidationService{
		validator: validators.NewAccountValidator(),
	}
}

// RequestReset answers a malformed email the same way as an unknown one:
// the request is dropped and nil is returned.
func (v *PasswordResetValidationService) RequestReset(ctx context.Context, request models.PasswordResetRequest) error {
	if err := v.validator.Validate(ctx, request); err != nil {
		logger.FromContext(ctx).Debug().
			Err(err).
			Str("func", "*PasswordResetValidationService.RequestReset").
			Msg("reset request with invalid email dropped")
		return nil
	}

	return v.inner.RequestReset(ctx, request)
}

func (v *PasswordResetValidationService) CheckToken(ctx context.Context, token string) error {
	return v.inner.CheckToken(ctx, token)
}

// ConfirmReset checks the new password only. A missing token is left to the
// wrapped service, which reports it as ErrTokenInvalid.
func (v *PasswordResetValidationService) ConfirmReset(ctx context.Context, request models.PasswordResetConfirm) error {
	if err := v.validator.Validate(ctx, request, validators.FieldPassword, validators.FieldPasswordStrength); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.ConfirmReset(ctx, request)
}

func (v *PasswordResetValidationService) Wrap(wrapped PasswordResetService) PasswordResetService {
	v.inner = wrapped
	return v
}

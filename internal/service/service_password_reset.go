// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/MKhiriev/go-newsroom/internal/adapter"
	"github.com/MKhiriev/go-newsroom/internal/config"
	"github.com/MKhiriev/go-newsroom/internal/crypto"
	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/internal/store"
	"github.com/MKhiriev/go-newsroom/internal/utils"
	"github.com/MKhiriev/go-newsroom/models"
)

// passwordResetService stores only the keyed digest of a reset token. The
// plain token exists in the reset mail and nowhere else.
type passwordResetService struct {
	accountRepository store.AccountRepository
	hasher            crypto.SecretHasher
	mailQueue         MailQueue

	// hashKey keys the HMAC digest of reset tokens.
	hashKey string

	// tokenDuration is the lifetime of a reset token.
	tokenDuration time.Duration

	// linkBase is the front-end page the mail links to.
	linkBase string

	newToken func() (string, error)
	now      func() time.Time

	logger *logger.Logger
}

func NewPasswordResetService(
	accountRepository store.AccountRepository,
	hasher crypto.SecretHasher,
	mailQueue MailQueue,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) PasswordResetService {
	return &passwordResetService{
		accountRepository: accountRepository,
		hasher:            hasher,
		mailQueue:         mailQueue,
		hashKey:           cfg.App.HashKey,
		tokenDuration:     cfg.Auth.ResetTokenDuration,
		linkBase:          cfg.Auth.ResetLinkBase,
		newToken:          utils.NewResetToken,
		now:               time.Now,
		logger:            logger,
	}
}

// RequestReset moves a known account to ResetRequested.
//
// A fresh token overwrites any pending one, so at most one token per account
// is valid. The digest and expiry are committed before the mail is queued.
// An unknown email returns nil.
func (s *passwordResetService) RequestReset(ctx context.Context, request models.PasswordResetRequest) error {
	log := logger.FromContext(ctx)

	if request.Email == "" {
		log.Error().Msg("password reset requested without email")
		return ErrInvalidDataProvided
	}

	token, err := s.newToken()
	if err != nil {
		log.Err(err).Msg("reset token generation failed")
		return err
	}
	tokenHash := utils.HashString(token, s.hashKey)
	expiresAt := s.now().Add(s.tokenDuration)

	account, err := s.accountRepository.UpdateAccountByEmail(ctx, request.Email, func(account *models.Account) error {
		account.ResetTokenHash = tokenHash
		account.ResetTokenExpiry = expiresAt
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Info().Str("email", request.Email).Msg("password reset requested for unknown email")
			return nil
		}
		log.Err(err).Str("email", request.Email).Msg("storing reset token ended with error")
		return fmt.Errorf("storing reset token ended with error: %w", err)
	}

	log.Info().
		Int64("account_id", account.AccountID).
		Time("expires_at", expiresAt).
		Msg("password reset requested")

	link, err := s.resetLink(token)
	if err != nil {
		log.Err(err).Msg("reset link building failed")
		return nil
	}
	message, err := adapter.NewPasswordResetMail(account, link, s.tokenDuration)
	if err != nil {
		log.Err(err).Int64("account_id", account.AccountID).Msg("reset mail rendering failed")
		return nil
	}
	enqueueMail(ctx, s.mailQueue, message)

	return nil
}

// CheckToken reports ErrTokenInvalid for an unknown token, ErrTokenExpired
// for a token past its expiry, and nil otherwise. Nothing is modified.
func (s *passwordResetService) CheckToken(ctx context.Context, token string) error {
	if token == "" {
		return ErrTokenInvalid
	}

	account, err := s.accountRepository.FindAccountByResetToken(ctx, utils.HashString(token, s.hashKey))
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return ErrTokenInvalid
		}
		logger.FromContext(ctx).Err(err).Msg("reset token lookup ended with error")
		return fmt.Errorf("reset token lookup ended with error: %w", err)
	}

	return s.checkExpiry(account, s.now())
}

// ConfirmReset moves the account from ResetRequested to Consumed.
//
// Under the row lock the token is checked again, the secret hash replaced,
// the token pair cleared and the lockout state reset. An expired token is
// rejected with ErrTokenExpired and left in place. A consumed token no
// longer matches any row, so a second confirmation yields ErrTokenInvalid.
func (s *passwordResetService) ConfirmReset(ctx context.Context, request models.PasswordResetConfirm) error {
	log := logger.FromContext(ctx)

	if request.NewPassword == "" {
		log.Error().Msg("password reset confirmed without new password")
		return ErrInvalidDataProvided
	}

	// Unknown and expired tokens are rejected before the secret is hashed.
	if err := s.CheckToken(ctx, request.Token); err != nil {
		return err
	}

	secretHash, err := s.hasher.Hash(request.NewPassword)
	if err != nil {
		log.Err(err).Msg("secret hashing failed")
		return fmt.Errorf("%w: %w", ErrSecretHashingFailed, err)
	}

	now := s.now()
	tokenHash := utils.HashString(request.Token, s.hashKey)
	account, err := s.accountRepository.UpdateAccountByResetToken(ctx, tokenHash, func(account *models.Account) error {
		if err := s.checkExpiry(*account, now); err != nil {
			return err
		}

		account.SecretHash = secretHash
		account.ResetTokenHash = ""
		account.ResetTokenExpiry = time.Time{}
		account.FailedAttempts = 0
		account.LockedUntil = time.Time{}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAccountNotFound):
			return ErrTokenInvalid
		case errors.Is(err, ErrTokenExpired):
			log.Info().Msg("expired reset token presented")
			return ErrTokenExpired
		default:
			log.Err(err).Msg("password reset ended with error")
			return fmt.Errorf("password reset ended with error: %w", err)
		}
	}

	log.Info().Int64("account_id", account.AccountID).Msg("password reset completed")
	return nil
}

// checkExpiry treats the expiry instant itself as expired.
func (s *passwordResetService) checkExpiry(account models.Account, now time.Time) error {
	if !account.HasPendingReset() {
		return ErrTokenInvalid
	}
	if !now.Before(account.ResetTokenExpiry) {
		return ErrTokenExpired
	}
	return nil
}

func (s *passwordResetService) resetLink(token string) (string, error) {
	u, err := url.Parse(s.linkBase)
	if err != nil {
		return "", fmt.Errorf("invalid reset link base: %w", err)
	}

	query := u.Query()
	query.Set("token", token)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

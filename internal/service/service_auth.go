// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-newsroom/internal/adapter"
	"github.com/MKhiriev/go-newsroom/internal/config"
	"github.com/MKhiriev/go-newsroom/internal/crypto"
	"github.com/MKhiriev/go-newsroom/internal/lockout"
	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/internal/store"
	"github.com/MKhiriev/go-newsroom/internal/utils"
	"github.com/MKhiriev/go-newsroom/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification under the lockout
// policy, and the session token lifecycle.
type authService struct {
	// accountRepository is the transactional account store.
	accountRepository store.AccountRepository

	// hasher hashes new secrets and compares candidates in constant time.
	hasher crypto.SecretHasher

	// policy decides when repeated failures lock an account.
	policy lockout.Policy

	// mailQueue receives the welcome mail after the account is committed.
	mailQueue MailQueue

	// tokenSignKey is the process-wide HMAC secret of session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	// now is the clock of the service. Replaced in tests.
	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// collaborators and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(
	accountRepository store.AccountRepository,
	hasher crypto.SecretHasher,
	mailQueue MailQueue,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) AuthService {
	return &authService{
		accountRepository: accountRepository,
		hasher:            hasher,
		policy:            lockout.Policy{Threshold: cfg.Auth.LockThreshold, Duration: cfg.Auth.LockDuration},
		mailQueue:         mailQueue,
		tokenSignKey:      cfg.App.TokenSignKey,
		tokenIssuer:       cfg.App.TokenIssuer,
		tokenDuration:     cfg.App.TokenDuration,
		now:               time.Now,
		logger:            logger,
	}
}

// Register creates a new account.
//
// The secret is hashed before it reaches the store and the role defaults to
// reader. Returns the persisted account or:
//   - ErrInvalidDataProvided if the email or the password is empty.
//   - ErrAdminSelfRegistration if the admin role is requested.
//   - a wrapped store.ErrEmailAlreadyExists if the email is taken.
//
// The welcome mail is queued after the insert; a full queue does not fail
// the registration.
func (a *authService) Register(ctx context.Context, request models.RegisterRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	if request.Email == "" || request.Password == "" {
		log.Error().Str("email", request.Email).Msg("invalid registration data provided")
		return models.Account{}, ErrInvalidDataProvided
	}
	if request.Role == models.RoleAdmin {
		log.Warn().Str("email", request.Email).Msg("admin self-registration attempt")
		return models.Account{}, ErrAdminSelfRegistration
	}

	role := request.Role
	if role == 0 {
		role = models.RoleReader
	}

	secretHash, err := a.hasher.Hash(request.Password)
	if err != nil {
		log.Err(err).Msg("secret hashing failed")
		return models.Account{}, fmt.Errorf("%w: %w", ErrSecretHashingFailed, err)
	}

	account, err := a.accountRepository.CreateAccount(ctx, models.Account{
		Email:      request.Email,
		FirstName:  request.FirstName,
		LastName:   request.LastName,
		Photo:      request.Photo,
		Role:       role,
		SecretHash: secretHash,
	})
	if err != nil {
		log.Err(err).Str("email", request.Email).Msg("account creation ended with error")
		return models.Account{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	message, err := adapter.NewWelcomeMail(account)
	if err != nil {
		log.Err(err).Int64("account_id", account.AccountID).Msg("welcome mail rendering failed")
		return account, nil
	}
	enqueueMail(ctx, a.mailQueue, message)

	return account, nil
}

// Login verifies a login attempt.
//
// The lock check, the secret comparison and the counter update run inside
// one row-locked transaction, so concurrent attempts on the same account
// never lose an update. Returns the account on success or:
//   - ErrInvalidDataProvided if the email or the password is empty.
//   - ErrUnknownAccount if no account has the email.
//   - *AccountLockedError if the account is locked, now or by this attempt.
//   - *InvalidSecretError if the password is wrong and the account stays open.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	if request.Email == "" || request.Password == "" {
		log.Error().Str("email", request.Email).Msg("invalid login data provided")
		return models.Account{}, ErrInvalidDataProvided
	}

	now := a.now()
	account, err := a.accountRepository.UpdateAccountByEmail(ctx, request.Email, func(account *models.Account) error {
		return a.verify(account, request.Password, now)
	})
	if err != nil {
		var (
			lockedErr  *AccountLockedError
			invalidErr *InvalidSecretError
		)
		switch {
		case errors.Is(err, store.ErrAccountNotFound):
			log.Info().Str("email", request.Email).Msg("login for unknown account")
			return models.Account{}, ErrUnknownAccount
		case errors.As(err, &lockedErr):
			log.Warn().
				Str("email", request.Email).
				Dur("retry_after", lockedErr.RetryAfter).
				Msg("login rejected, account is locked")
			return models.Account{}, err
		case errors.As(err, &invalidErr):
			log.Info().
				Str("email", request.Email).
				Int("attempts_remaining", invalidErr.AttemptsRemaining).
				Msg("wrong password")
			return models.Account{}, err
		default:
			log.Err(err).Str("email", request.Email).Msg("login ended with error")
			return models.Account{}, fmt.Errorf("login ended with error: %w", err)
		}
	}

	log.Info().Int64("account_id", account.AccountID).Msg("login succeeded")
	return account, nil
}

// verify is the lockout state machine applied to a locked account row.
// A locked account is rejected before the secret is looked at.
func (a *authService) verify(account *models.Account, secret string, now time.Time) error {
	state := lockout.State{FailedAttempts: account.FailedAttempts, LockedUntil: account.LockedUntil}

	if err := a.policy.Check(state, now); err != nil {
		return err
	}

	ok, err := a.hasher.Compare(secret, account.SecretHash)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSecretHashingFailed, err)
	}

	if !ok {
		next, failErr := a.policy.Fail(state, now)
		applyLockoutState(account, next)
		return failErr
	}

	applyLockoutState(account, a.policy.Succeed(state))
	return nil
}

func applyLockoutState(account *models.Account, state lockout.State) {
	account.FailedAttempts = state.FailedAttempts
	account.LockedUntil = state.LockedUntil
}

// CreateToken issues a signed session token for the account.
//
// The token carries the configured issuer, the account id and role, and
// expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, account models.Account) (models.Token, error) {
	token, err := utils.IssueToken(a.tokenSignKey, a.tokenIssuer, account.AccountID, account.Role, a.now(), a.tokenDuration)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("account_id", account.AccountID).Msg("token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw session token at the current instant.
//
// Returns the claims on success, an error wrapping ErrSessionExpired for an
// authentic but expired token, or one wrapping ErrBadSignature for anything
// else.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Claims, error) {
	claims, err := utils.ValidateToken(tokenString, a.tokenSignKey, a.tokenIssuer, a.now())
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("session token rejected")
		return models.Claims{}, err
	}

	return claims, nil
}

// Authenticate validates the token and resolves it to the current account.
// Returns ErrAccountNotFound if the account was removed after issuance.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.Account, error) {
	claims, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.Account{}, err
	}

	accountID, err := claims.AccountID()
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBadSignature, err)
	}

	account, err := a.accountRepository.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			logger.FromContext(ctx).Warn().Int64("account_id", accountID).Msg("token names a missing account")
			return models.Account{}, ErrAccountNotFound
		}
		return models.Account{}, fmt.Errorf("account lookup ended with error: %w", err)
	}

	return account, nil
}

// UpdateProfile edits the public attributes of an account under its row
// lock. Returns the updated account or:
//   - ErrInvalidDataProvided if the email is empty.
//   - ErrAccountNotFound if the account no longer exists.
//   - a wrapped store.ErrEmailAlreadyExists if another account has the email.
func (a *authService) UpdateProfile(ctx context.Context, accountID int64, request models.UpdateProfileRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	if request.Email == "" {
		log.Error().Int64("account_id", accountID).Msg("invalid profile data provided")
		return models.Account{}, ErrInvalidDataProvided
	}

	account, err := a.accountRepository.UpdateAccountByID(ctx, accountID, func(account *models.Account) error {
		account.FirstName = request.FirstName
		account.LastName = request.LastName
		account.Email = request.Email
		if request.Photo != "" {
			account.Photo = request.Photo
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Warn().Int64("account_id", accountID).Msg("profile update for a missing account")
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Int64("account_id", accountID).Msg("profile update ended with error")
		return models.Account{}, fmt.Errorf("profile update ended with error: %w", err)
	}

	log.Info().Int64("account_id", account.AccountID).Msg("profile updated")
	return account, nil
}

// enqueueMail hands a message to the queue. Delivery is best effort: a
// dropped message is logged and otherwise ignored.
func enqueueMail(ctx context.Context, queue MailQueue, message models.MailMessage) {
	if queue == nil {
		return
	}
	if !queue.Enqueue(message) {
		logger.FromContext(ctx).Warn().
			Str("kind", string(message.Kind)).
			Msg("mail queue is full, message dropped")
	}
}

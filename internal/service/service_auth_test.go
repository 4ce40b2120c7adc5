// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-newsroom/internal/crypto"
	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/internal/mock"
	"github.com/MKhiriev/go-newsroom/internal/store"
	"github.com/MKhiriev/go-newsroom/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestAuthSvc builds an authService on the given repository and hasher
// with a manual clock and a recording mail queue.
func newTestAuthSvc(repo store.AccountRepository, hasher crypto.SecretHasher) (*authService, *testClock, *recordingQueue) {
	clock := newTestClock()
	queue := &recordingQueue{}

	svc := NewAuthService(repo, hasher, queue, testConfig(), logger.Nop()).(*authService)
	svc.now = clock.Now

	return svc, clock, queue
}

// fastHasher is a real Argon2id hasher with test-sized parameters.
func fastHasher() crypto.SecretHasher {
	return crypto.NewSecretHasher(crypto.Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16})
}

// compareRight makes the hasher accept only "right".
func compareRight(hasher *mock.MockSecretHasher) {
	hasher.EXPECT().Compare(gomock.Any(), gomock.Any()).DoAndReturn(
		func(secret, _ string) (bool, error) { return secret == "right", nil }).AnyTimes()
}

func account42() models.Account {
	return models.Account{
		AccountID:  42,
		Email:      "ana@example.com",
		FirstName:  "Ana",
		LastName:   "Ruiz",
		Role:       models.RoleWriter,
		SecretHash: "stored-hash",
		CreatedAt:  t0.Add(-24 * time.Hour),
	}
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo, mem := newMemoryRepository(t, ctrl)
	hasher := mock.NewMockSecretHasher(ctrl)
	hasher.EXPECT().Hash("correct horse").Return("argon2id$hash", nil)

	svc, _, queue := newTestAuthSvc(repo, hasher)

	account, err := svc.Register(context.Background(), models.RegisterRequest{
		FirstName: "Ana",
		LastName:  "Ruiz",
		Email:     "ana@example.com",
		Password:  "correct horse",
	})

	require.NoError(t, err)
	assert.NotZero(t, account.AccountID)
	assert.Equal(t, models.RoleReader, account.Role, "role defaults to reader")
	assert.Equal(t, "argon2id$hash", mem.get(account.AccountID).SecretHash)
	assert.NotEqual(t, "correct horse", mem.get(account.AccountID).SecretHash)

	messages := queue.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, models.MailWelcome, messages[0].Kind)
	assert.Equal(t, "ana@example.com", messages[0].ToEmail)
}

func TestAuthService_Register_KeepsRequestedRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo, _ := newMemoryRepository(t, ctrl)
	hasher := mock.NewMockSecretHasher(ctrl)
	hasher.EXPECT().Hash(gomock.Any()).Return("h", nil)
	svc, _, _ := newTestAuthSvc(repo, hasher)

	account, err := svc.Register(context.Background(), models.RegisterRequest{
		Email: "w@example.com", Password: "secret-pass", Role: models.RoleEditor,
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, account.Role)
}

func TestAuthService_Register_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		request models.RegisterRequest
		wantErr error
	}{
		{"empty email", models.RegisterRequest{Password: "secret"}, ErrInvalidDataProvided},
		{"empty password", models.RegisterRequest{Email: "a@example.com"}, ErrInvalidDataProvided},
		{"admin", models.RegisterRequest{Email: "a@example.com", Password: "secret", Role: models.RoleAdmin}, ErrAdminSelfRegistration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// no expectations: neither the store nor the hasher may be touched
			svc, _, queue := newTestAuthSvc(mock.NewMockAccountRepository(ctrl), mock.NewMockSecretHasher(ctrl))

			_, err := svc.Register(context.Background(), tt.request)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, queue.Messages())
		})
	}
}

func TestAuthService_Register_EmailAlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo, _ := newMemoryRepository(t, ctrl, account42())
	hasher := mock.NewMockSecretHasher(ctrl)
	hasher.EXPECT().Hash(gomock.Any()).Return("h", nil)
	svc, _, queue := newTestAuthSvc(repo, hasher)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Email: "ana@example.com", Password: "secret-pass"})

	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
	assert.Empty(t, queue.Messages())
}

func TestAuthService_Register_HashError(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mock.NewMockSecretHasher(ctrl)
	hasher.EXPECT().Hash(gomock.Any()).Return("", errors.New("entropy exhausted"))
	svc, _, _ := newTestAuthSvc(mock.NewMockAccountRepository(ctrl), hasher)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Email: "a@example.com", Password: "secret-pass"})

	assert.ErrorIs(t, err, ErrSecretHashingFailed)
}

func TestAuthService_Register_FullMailQueueDoesNotFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo, _ := newMemoryRepository(t, ctrl)
	hasher := mock.NewMockSecretHasher(ctrl)
	hasher.EXPECT().Hash(gomock.Any()).Return("h", nil)
	svc, _, queue := newTestAuthSvc(repo, hasher)
	queue.full = true

	account, err := svc.Register(context.Background(), models.RegisterRequest{Email: "a@example.com", Password: "secret-pass"})

	require.NoError(t, err)
	assert.NotZero(t, account.AccountID)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestAuthService_Login_WrongSecretIncrementsCounter(t *testing.T) {
	for k := 0; k < 2; k++ {
		ctrl := gomock.NewController(t)
		stored := account42()
		stored.FailedAttempts = k
		repo, mem := newMemoryRepository(t, ctrl, stored)
		hasher := mock.NewMockSecretHasher(ctrl)
		compareRight(hasher)
		svc, _, _ := newTestAuthSvc(repo, hasher)

		_, err := svc.Login(context.Background(), models.LoginRequest{Email: stored.Email, Password: "wrong"})

		var invalidErr *InvalidSecretError
		require.ErrorAs(t, err, &invalidErr)
		assert.ErrorIs(t, err, ErrInvalidSecret)
		assert.Equal(t, 2-k, invalidErr.AttemptsRemaining)
		assert.Equal(t, k+1, mem.get(42).FailedAttempts)
		assert.True(t, mem.get(42).LockedUntil.IsZero())
	}
}

func TestAuthService_Login_ThirdFailureLocks(t *testing.T) {
	ctrl := gomock.NewController(t)
	stored := account42()
	stored.FailedAttempts = 2
	repo, mem := newMemoryRepository(t, ctrl, stored)
	hasher := mock.NewMockSecretHasher(ctrl)
	compareRight(hasher)
	svc, clock, _ := newTestAuthSvc(repo, hasher)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: stored.Email, Password: "wrong"})

	var lockedErr *AccountLockedError
	require.ErrorAs(t, err, &lockedErr)
	assert.ErrorIs(t, err, ErrAccountLocked)
	assert.Equal(t, 15*time.Minute, lockedErr.RetryAfter)
	assert.Equal(t, 0, mem.get(42).FailedAttempts)
	assert.Equal(t, clock.Now().Add(15*time.Minute), mem.get(42).LockedUntil)
}

func TestAuthService_Login_LockedRejectsCorrectSecretWithoutComparing(t *testing.T) {
	ctrl := gomock.NewController(t)
	stored := account42()
	stored.FailedAttempts = 1
	stored.LockedUntil = t0.Add(10 * time.Minute)
	repo, mem := newMemoryRepository(t, ctrl, stored)
	// no Compare expectation: a locked account must not reach the hasher
	svc, _, _ := newTestAuthSvc(repo, mock.NewMockSecretHasher(ctrl))

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: stored.Email, Password: "right"})

	var lockedErr *AccountLockedError
	require.ErrorAs(t, err, &lockedErr)
	assert.Equal(t, 10*time.Minute, lockedErr.RetryAfter)
	assert.Equal(t, stored, mem.get(42), "a locked attempt does not mutate the account")
}

func TestAuthService_Login_AfterLockExpiry(t *testing.T) {
	t.Run("correct secret clears the lock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		stored := account42()
		stored.LockedUntil = t0.Add(-time.Second)
		repo, mem := newMemoryRepository(t, ctrl, stored)
		hasher := mock.NewMockSecretHasher(ctrl)
		compareRight(hasher)
		svc, _, _ := newTestAuthSvc(repo, hasher)

		account, err := svc.Login(context.Background(), models.LoginRequest{Email: stored.Email, Password: "right"})

		require.NoError(t, err)
		assert.Equal(t, int64(42), account.AccountID)
		assert.True(t, mem.get(42).LockedUntil.IsZero())
		assert.Zero(t, mem.get(42).FailedAttempts)
	})

	t.Run("lock expiring exactly now no longer blocks", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		stored := account42()
		stored.LockedUntil = t0
		repo, _ := newMemoryRepository(t, ctrl, stored)
		hasher := mock.NewMockSecretHasher(ctrl)
		compareRight(hasher)
		svc, _, _ := newTestAuthSvc(repo, hasher)

		_, err := svc.Login(context.Background(), models.LoginRequest{Email: stored.Email, Password: "right"})

		assert.NoError(t, err)
	})

	t.Run("wrong secret counts from zero", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		stored := account42()
		stored.LockedUntil = t0.Add(-time.Minute)
		repo, mem := newMemoryRepository(t, ctrl, stored)
		hasher := mock.NewMockSecretHasher(ctrl)
		compareRight(hasher)
		svc, _, _ := newTestAuthSvc(repo, hasher)

		_, err := svc.Login(context.Background(), models.LoginRequest{Email: stored.Email, Password: "wrong"})

		var invalidErr *InvalidSecretError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, 2, invalidErr.AttemptsRemaining)
		assert.Equal(t, 1, mem.get(42).FailedAttempts)
	})
}

func TestAuthService_Login_SuccessResetsCounter(t *testing.T) {
	ctrl := gomock.NewController(t)
	stored := account42()
	stored.FailedAttempts = 2
	repo, mem := newMemoryRepository(t, ctrl, stored)
	hasher := mock.NewMockSecretHasher(ctrl)
	compareRight(hasher)
	svc, _, _ := newTestAuthSvc(repo, hasher)

	account, err := svc.Login(context.Background(), models.LoginRequest{Email: stored.Email, Password: "right"})

	require.NoError(t, err)
	assert.Zero(t, account.FailedAttempts)
	assert.Zero(t, mem.get(42).FailedAttempts)
}

func TestAuthService_Login_UnknownAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo, _ := newMemoryRepository(t, ctrl)
	svc, _, _ := newTestAuthSvc(repo, mock.NewMockSecretHasher(ctrl))

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "x"})

	assert.ErrorIs(t, err, ErrUnknownAccount)
}

func TestAuthService_Login_InvalidData(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(mock.NewMockAccountRepository(ctrl), mock.NewMockSecretHasher(ctrl))

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ana@example.com"})

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Login_CompareError(t *testing.T) {
	ctrl := gomock.NewController(t)
	stored := account42()
	repo, mem := newMemoryRepository(t, ctrl, stored)
	hasher := mock.NewMockSecretHasher(ctrl)
	hasher.EXPECT().Compare("right", "stored-hash").Return(false, crypto.ErrMalformedHash)
	svc, _, _ := newTestAuthSvc(repo, hasher)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: stored.Email, Password: "right"})

	assert.ErrorIs(t, err, ErrSecretHashingFailed)
	assert.ErrorIs(t, err, crypto.ErrMalformedHash)
	assert.Equal(t, stored, mem.get(42))
}

func TestAuthService_Login_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockAccountRepository(ctrl)
	repo.EXPECT().UpdateAccountByEmail(gomock.Any(), "ana@example.com", gomock.Any()).
		Return(models.Account{}, store.ErrBeginningTransaction)
	svc, _, _ := newTestAuthSvc(repo, mock.NewMockSecretHasher(ctrl))

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ana@example.com", Password: "x"})

	assert.ErrorIs(t, err, store.ErrBeginningTransaction)
	assert.NotErrorIs(t, err, ErrUnknownAccount)
}

// Account 42 fails three times in a row and is locked for 900s; one second
// later even the correct secret is rejected.
func TestAuthService_Login_Scenario42(t *testing.T) {
	hasher := fastHasher()
	hash, err := hasher.Hash("right secret")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	stored := account42()
	stored.SecretHash = hash
	repo, mem := newMemoryRepository(t, ctrl, stored)
	svc, clock, _ := newTestAuthSvc(repo, hasher)
	ctx := context.Background()
	wrong := models.LoginRequest{Email: stored.Email, Password: "wrong secret"}

	_, err = svc.Login(ctx, wrong)
	var invalidErr *InvalidSecretError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, 2, invalidErr.AttemptsRemaining)

	_, err = svc.Login(ctx, wrong)
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, 1, invalidErr.AttemptsRemaining)

	_, err = svc.Login(ctx, wrong)
	var lockedErr *AccountLockedError
	require.ErrorAs(t, err, &lockedErr)
	assert.Equal(t, 900*time.Second, lockedErr.RetryAfter)
	assert.Zero(t, mem.get(42).FailedAttempts)

	clock.Advance(time.Second)
	_, err = svc.Login(ctx, models.LoginRequest{Email: stored.Email, Password: "right secret"})
	require.ErrorAs(t, err, &lockedErr)
	assert.InDelta(t, 900, lockedErr.RetryAfter.Seconds(), 1)
	assert.Zero(t, mem.get(42).FailedAttempts, "a locked attempt does not count")

	clock.Advance(15 * time.Minute)
	account, err := svc.Login(ctx, models.LoginRequest{Email: stored.Email, Password: "right secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), account.AccountID)
	assert.True(t, mem.get(42).LockedUntil.IsZero())
}

// ─────────────────────────────────────────────
// Tokens
// ─────────────────────────────────────────────

func TestAuthService_TokenRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, clock, _ := newTestAuthSvc(mock.NewMockAccountRepository(ctrl), mock.NewMockSecretHasher(ctrl))
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, account42())
	require.NoError(t, err)
	assert.Equal(t, int64(42), token.AccountID)
	assert.Equal(t, t0.Add(time.Hour), token.ExpiresAt)

	clock.Advance(time.Hour - time.Second)
	claims, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	accountID, err := claims.AccountID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), accountID)
	assert.Equal(t, models.RoleWriter, claims.Role)

	clock.Advance(2 * time.Second)
	_, err = svc.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.NotErrorIs(t, err, ErrBadSignature)
}

func TestAuthService_ParseToken_BadSignature(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(mock.NewMockAccountRepository(ctrl), mock.NewMockSecretHasher(ctrl))
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, account42())
	require.NoError(t, err)

	parts := strings.Split(token.SignedString, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	for _, tokenString := range []string{tampered, "garbage", ""} {
		_, err = svc.ParseToken(ctx, tokenString)
		assert.ErrorIs(t, err, ErrBadSignature, tokenString)
	}
}

func TestAuthService_CreateToken_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(mock.NewMockAccountRepository(ctrl), mock.NewMockSecretHasher(ctrl))
	svc.tokenSignKey = ""

	_, err := svc.CreateToken(context.Background(), account42())

	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

// ─────────────────────────────────────────────
// Authenticate
// ─────────────────────────────────────────────

func TestAuthService_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo, mem := newMemoryRepository(t, ctrl, account42())
	svc, clock, _ := newTestAuthSvc(repo, mock.NewMockSecretHasher(ctrl))
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, account42())
	require.NoError(t, err)

	account, err := svc.Authenticate(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), account.AccountID)

	mem.mu.Lock()
	delete(mem.byID, 42)
	mem.mu.Unlock()
	_, err = svc.Authenticate(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	clock.Advance(2 * time.Hour)
	_, err = svc.Authenticate(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestAuthService_Authenticate_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockAccountRepository(ctrl)
	repo.EXPECT().FindAccountByID(gomock.Any(), int64(42)).Return(models.Account{}, store.ErrExecutingQuery)
	svc, _, _ := newTestAuthSvc(repo, mock.NewMockSecretHasher(ctrl))

	token, err := svc.CreateToken(context.Background(), account42())
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token.SignedString)

	assert.ErrorIs(t, err, store.ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrAccountNotFound)
}

// ─────────────────────────────────────────────
// UpdateProfile
// ─────────────────────────────────────────────

func TestAuthService_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	stored := account42()
	stored.Photo = "ana.png"
	stored.FailedAttempts = 2
	repo, mem := newMemoryRepository(t, ctrl, stored)
	svc, _, _ := newTestAuthSvc(repo, mock.NewMockSecretHasher(ctrl))

	updated, err := svc.UpdateProfile(context.Background(), 42, models.UpdateProfileRequest{
		FirstName: "Anna",
		LastName:  "Ruiz Diaz",
		Email:     "anna@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.FirstName)
	assert.Equal(t, "Ruiz Diaz", updated.LastName)
	assert.Equal(t, "anna@example.com", updated.Email)
	assert.Equal(t, "ana.png", updated.Photo, "an empty photo keeps the current one")

	got := mem.get(42)
	assert.Equal(t, updated, got)
	assert.Equal(t, stored.SecretHash, got.SecretHash)
	assert.Equal(t, 2, got.FailedAttempts)
	assert.Equal(t, stored.Role, got.Role)
}

func TestAuthService_UpdateProfile_ReplacesPhoto(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo, mem := newMemoryRepository(t, ctrl, account42())
	svc, _, _ := newTestAuthSvc(repo, mock.NewMockSecretHasher(ctrl))

	_, err := svc.UpdateProfile(context.Background(), 42, models.UpdateProfileRequest{
		FirstName: "Ana",
		LastName:  "Ruiz",
		Email:     "ana@example.com",
		Photo:     "ana-2026.png",
	})

	require.NoError(t, err)
	assert.Equal(t, "ana-2026.png", mem.get(42).Photo)
}

func TestAuthService_UpdateProfile_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	other := account42()
	other.AccountID = 43
	other.Email = "taken@example.com"
	repo, mem := newMemoryRepository(t, ctrl, account42(), other)
	svc, _, _ := newTestAuthSvc(repo, mock.NewMockSecretHasher(ctrl))

	_, err := svc.UpdateProfile(context.Background(), 42, models.UpdateProfileRequest{
		FirstName: "Ana",
		LastName:  "Ruiz",
		Email:     "taken@example.com",
	})

	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
	assert.Equal(t, "ana@example.com", mem.get(42).Email)
}

func TestAuthService_UpdateProfile_Failures(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "account removed", repoErr: store.ErrAccountNotFound, wantErr: ErrAccountNotFound},
		{name: "storage failure", repoErr: store.ErrCommitingTransaction, wantErr: store.ErrCommitingTransaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockAccountRepository(ctrl)
			repo.EXPECT().UpdateAccountByID(gomock.Any(), int64(42), gomock.Any()).Return(models.Account{}, tt.repoErr)
			svc, _, _ := newTestAuthSvc(repo, mock.NewMockSecretHasher(ctrl))

			_, err := svc.UpdateProfile(context.Background(), 42, models.UpdateProfileRequest{
				FirstName: "Ana",
				LastName:  "Ruiz",
				Email:     "ana@example.com",
			})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_UpdateProfile_EmptyEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(mock.NewMockAccountRepository(ctrl), mock.NewMockSecretHasher(ctrl))

	_, err := svc.UpdateProfile(context.Background(), 42, models.UpdateProfileRequest{FirstName: "Ana"})

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

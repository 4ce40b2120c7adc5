// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-newsroom/internal/service"
	"github.com/MKhiriev/go-newsroom/internal/store"
	"github.com/MKhiriev/go-newsroom/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAccount = models.Account{
	AccountID:  42,
	Email:      "anna@newsroom.test",
	FirstName:  "Anna",
	LastName:   "Smirnova",
	Role:       models.RoleWriter,
	SecretHash: "$argon2id$secret",
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "success",
			body:       `{"first_name":"Anna","last_name":"Smirnova","email":"anna@newsroom.test","password":"correct horse"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed json",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantError:  ErrInvalidJSON.Error(),
		},
		{
			name:       "invalid data",
			body:       `{"email":"nope"}`,
			err:        fmt.Errorf("%w: invalid email", service.ErrInvalidDataProvided),
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid data provided: invalid email",
		},
		{
			name:       "email already exists",
			body:       `{"email":"anna@newsroom.test","password":"correct horse"}`,
			err:        fmt.Errorf("%w: %w", store.ErrExecutingQuery, store.ErrEmailAlreadyExists),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "admin self registration",
			body:       `{"email":"anna@newsroom.test","password":"correct horse","role_id":1}`,
			err:        service.ErrAdminSelfRegistration,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "storage failure is hidden",
			body:       `{"email":"anna@newsroom.test","password":"correct horse"}`,
			err:        fmt.Errorf("%w: connection refused", store.ErrBeginningTransaction),
			wantStatus: http.StatusInternalServerError,
			wantError:  http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.RegisterRequest
			h := newServicesHandler(&mockAuthService{
				registerFn: func(_ context.Context, request models.RegisterRequest) (models.Account, error) {
					got = request
					if tt.err != nil {
						return models.Account{}, tt.err
					}
					return testAccount, nil
				},
			}, nil)

			rec := serve(h, http.MethodPost, "/auth/register", tt.body, nil)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var summary models.AccountSummary
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
				assert.Equal(t, testAccount.Summary(), summary)
				assert.Equal(t, "Anna", got.FirstName)
				assert.Equal(t, "correct horse", got.Password)
				assert.NotContains(t, rec.Body.String(), "argon2")
				return
			}

			response := decodeError(t, rec)
			if tt.wantError != "" {
				assert.Contains(t, response.Error, tt.wantError)
			}
		})
	}
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	expiresAt := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	h := newServicesHandler(&mockAuthService{
		loginFn: func(_ context.Context, request models.LoginRequest) (models.Account, error) {
			assert.Equal(t, "anna@newsroom.test", request.Email)
			assert.Equal(t, "correct horse", request.Password)
			return testAccount, nil
		},
		createTokenFn: func(_ context.Context, account models.Account) (models.Token, error) {
			assert.Equal(t, testAccount, account)
			return models.Token{SignedString: "signed.jwt.value", AccountID: 42, ExpiresAt: expiresAt}, nil
		},
	}, nil)

	rec := serve(h, http.MethodPost, "/auth/login", `{"email":"anna@newsroom.test","password":"correct horse"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer signed.jwt.value", rec.Header().Get("Authorization"))

	var response models.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "signed.jwt.value", response.AccessToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, testAccount.Summary(), response.Account)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name              string
		body              string
		err               error
		wantStatus        int
		wantAttempts      *int
		wantRetryAfter    string
		wantRetryAfterSec *int64
	}{
		{
			name:       "malformed json",
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown account",
			body:       `{"email":"ghost@newsroom.test","password":"whatever1"}`,
			err:        service.ErrUnknownAccount,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:         "wrong password",
			body:         `{"email":"anna@newsroom.test","password":"wrong pass"}`,
			err:          &service.InvalidSecretError{AttemptsRemaining: 2},
			wantStatus:   http.StatusBadRequest,
			wantAttempts: intPtr(2),
		},
		{
			name:              "locked",
			body:              `{"email":"anna@newsroom.test","password":"correct horse"}`,
			err:               &service.AccountLockedError{RetryAfter: 15 * time.Minute},
			wantStatus:        http.StatusTooManyRequests,
			wantRetryAfter:    "900",
			wantRetryAfterSec: int64Ptr(900),
		},
		{
			name:              "locked with partial second rounds up",
			body:              `{"email":"anna@newsroom.test","password":"correct horse"}`,
			err:               &service.AccountLockedError{RetryAfter: 4*time.Minute + 500*time.Millisecond},
			wantStatus:        http.StatusTooManyRequests,
			wantRetryAfter:    "241",
			wantRetryAfterSec: int64Ptr(241),
		},
		{
			name:       "invalid data",
			body:       `{"email":"","password":""}`,
			err:        service.ErrInvalidDataProvided,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newServicesHandler(&mockAuthService{
				loginFn: func(_ context.Context, _ models.LoginRequest) (models.Account, error) {
					return models.Account{}, tt.err
				},
			}, nil)

			rec := serve(h, http.MethodPost, "/auth/login", tt.body, nil)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Empty(t, rec.Header().Get("Authorization"))
			assert.Equal(t, tt.wantRetryAfter, rec.Header().Get("Retry-After"))

			response := decodeError(t, rec)
			assert.NotEmpty(t, response.Error)
			assert.Equal(t, tt.wantAttempts, response.AttemptsRemaining)
			assert.Equal(t, tt.wantRetryAfterSec, response.RetryAfterSeconds)
		})
	}
}

func TestLogin_TokenCreationFails(t *testing.T) {
	h := newServicesHandler(&mockAuthService{
		loginFn: func(_ context.Context, _ models.LoginRequest) (models.Account, error) {
			return testAccount, nil
		},
		createTokenFn: func(_ context.Context, _ models.Account) (models.Token, error) {
			return models.Token{}, fmt.Errorf("%w: %w", service.ErrTokenCreationFailed, errors.New("boom"))
		},
	}, nil)

	rec := serve(h, http.MethodPost, "/auth/login", `{"email":"anna@newsroom.test","password":"correct horse"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Authorization"))
	assert.NotContains(t, rec.Body.String(), "boom")
}

// ─────────────────────────────────────────────
// me
// ─────────────────────────────────────────────

func TestMe(t *testing.T) {
	h := newServicesHandler(&mockAuthService{
		authenticateFn: func(_ context.Context, tokenString string) (models.Account, error) {
			assert.Equal(t, "signed.jwt.value", tokenString)
			return testAccount, nil
		},
	}, nil)

	rec := serve(h, http.MethodGet, "/auth/me", "", map[string]string{"Authorization": "Bearer signed.jwt.value"})

	require.Equal(t, http.StatusOK, rec.Code)
	var summary models.AccountSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	assert.Equal(t, testAccount.Summary(), summary)
}

func TestMe_WithoutAccountInContext(t *testing.T) {
	rec := serveHandlerFunc(newTestHandler().me)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// updateMe
// ─────────────────────────────────────────────

func authenticatedAs(account models.Account) func(context.Context, string) (models.Account, error) {
	return func(_ context.Context, _ string) (models.Account, error) { return account, nil }
}

func TestUpdateMe(t *testing.T) {
	var gotID int64
	var gotRequest models.UpdateProfileRequest
	h := newServicesHandler(&mockAuthService{
		authenticateFn: authenticatedAs(testAccount),
		updateProfileFn: func(_ context.Context, accountID int64, request models.UpdateProfileRequest) (models.Account, error) {
			gotID = accountID
			gotRequest = request
			updated := testAccount
			updated.FirstName = request.FirstName
			updated.LastName = request.LastName
			updated.Email = request.Email
			updated.Photo = request.Photo
			return updated, nil
		},
	}, nil)

	rec := serve(h, http.MethodPut, "/auth/me",
		`{"id":7,"role_id":3,"first_name":"Anya","last_name":"Smirnova","email":"anya@newsroom.test","photo":"anya.png"}`,
		map[string]string{"Authorization": "Bearer signed.jwt.value"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotID, "account id comes from the session")
	assert.Equal(t, models.UpdateProfileRequest{FirstName: "Anya", LastName: "Smirnova", Email: "anya@newsroom.test", Photo: "anya.png"}, gotRequest)

	var summary models.AccountSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	assert.Equal(t, int64(42), summary.AccountID)
	assert.Equal(t, "anya@newsroom.test", summary.Email)
	assert.Equal(t, models.RoleWriter, summary.Role)
	assert.NotContains(t, rec.Body.String(), "argon2id")
}

func TestUpdateMe_Failures(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "malformed json", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "invalid data", body: `{"email":"nope"}`, err: fmt.Errorf("%w: invalid email", service.ErrInvalidDataProvided), wantStatus: http.StatusBadRequest},
		{name: "email taken", body: `{"email":"taken@newsroom.test"}`, err: fmt.Errorf("profile update ended with error: %w", store.ErrEmailAlreadyExists), wantStatus: http.StatusConflict},
		{name: "account removed", body: `{"email":"anna@newsroom.test"}`, err: service.ErrAccountNotFound, wantStatus: http.StatusUnauthorized},
		{name: "storage failure", body: `{"email":"anna@newsroom.test"}`, err: store.ErrCommitingTransaction, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newServicesHandler(&mockAuthService{
				authenticateFn: authenticatedAs(testAccount),
				updateProfileFn: func(_ context.Context, _ int64, _ models.UpdateProfileRequest) (models.Account, error) {
					return models.Account{}, tt.err
				},
			}, nil)

			rec := serve(h, http.MethodPut, "/auth/me", tt.body, map[string]string{"Authorization": "Bearer signed.jwt.value"})

			assert.Equal(t, tt.wantStatus, rec.Code)
			decodeError(t, rec)
		})
	}
}

func TestUpdateMe_WithoutAccountInContext(t *testing.T) {
	rec := serveHandlerFunc(newTestHandler().updateMe)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/internal/utils"
	"github.com/MKhiriev/go-newsroom/models"
)

// auth is an HTTP middleware that enforces bearer token authentication.
//
// It extracts the token from the "Authorization" header, resolves it to an
// account via [service.AuthService.Authenticate] and stores the account in
// the request context (see [utils.WithAccount]) before delegating to next.
//
// Requests are rejected with 401 Unauthorized when the header is missing or
// malformed, when the signature does not verify, when the session has expired,
// and when the account behind the token no longer exists. Storage failures
// are answered with 500.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		ctx := r.Context()
		account, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		logger.FromContext(ctx).Debug().Int64("account_id", account.AccountID).Msg("request authenticated")

		next.ServeHTTP(w, r.WithContext(utils.WithAccount(ctx, account)))
	})
}

// requireRole admits only accounts holding one of roles. It must run after
// auth.
func requireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := utils.GetAccountFromContext(r.Context())
			if !ok {
				writeError(w, r, ErrNotAuthenticated)
				return
			}

			for _, role := range roles {
				if account.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeError(w, r, fmt.Errorf("%w: %s", ErrInsufficientRole, account.Role))
		})
	}
}

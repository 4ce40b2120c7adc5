// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/internal/utils"
	"github.com/MKhiriev/go-newsroom/models"
)

const tokenTypeBearer = "Bearer"

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	account, err := h.services.AuthService.Register(ctx, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("account_id", account.AccountID).Str("role", account.Role.String()).Msg("account registered")

	utils.WriteJSON(w, account.Summary(), http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	account, err := h.services.AuthService.Login(ctx, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, account)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("account_id", account.AccountID).Time("expires_at", token.ExpiresAt).Msg("account logged in")

	w.Header().Set("Authorization", fmt.Sprintf("%s %s", tokenTypeBearer, token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{
		AccessToken: token.SignedString,
		TokenType:   tokenTypeBearer,
		Account:     account.Summary(),
	}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	account, ok := utils.GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNotAuthenticated)
		return
	}

	utils.WriteJSON(w, account.Summary(), http.StatusOK)
}

// updateMe replaces the profile of the authenticated account. The account
// id comes from the session, never from the request.
func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	account, ok := utils.GetAccountFromContext(ctx)
	if !ok {
		writeError(w, r, ErrNotAuthenticated)
		return
	}

	var request models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	updated, err := h.services.AuthService.UpdateProfile(ctx, account.AccountID, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("account_id", updated.AccountID).Msg("profile updated")

	utils.WriteJSON(w, updated.Summary(), http.StatusOK)
}

func (h *Handler) adminPing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

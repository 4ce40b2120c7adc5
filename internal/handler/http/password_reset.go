// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-newsroom/internal/utils"
	"github.com/MKhiriev/go-newsroom/models"
	"github.com/go-chi/chi/v5"
)

const (
	msgResetRequested = "if the email is registered, a password reset link has been sent"
	msgResetTokenOK   = "reset token is valid"
	msgResetConfirmed = "password has been changed"
)

// requestPasswordReset answers identically whether or not the email is known.
func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var request models.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	if err := h.services.PasswordResetService.RequestReset(r.Context(), request); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgResetRequested}, http.StatusOK)
}

func (h *Handler) checkPasswordResetToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := h.services.PasswordResetService.CheckToken(r.Context(), token); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgResetTokenOK}, http.StatusOK)
}

func (h *Handler) confirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var request models.PasswordResetConfirm
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	if err := h.services.PasswordResetService.ConfirmReset(r.Context(), request); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: msgResetConfirmed}, http.StatusOK)
}

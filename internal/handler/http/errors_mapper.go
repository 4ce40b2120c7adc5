// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/internal/service"
	"github.com/MKhiriev/go-newsroom/internal/store"
	"github.com/MKhiriev/go-newsroom/internal/utils"
	"github.com/MKhiriev/go-newsroom/models"
)

// errorStatus pairs a sentinel with its status code. The table is ordered:
// the first matching target wins.
type errorStatus struct {
	target error
	status int
}

var errorStatusTable = []errorStatus{
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{ErrNotAuthenticated, http.StatusUnauthorized},
	{ErrInsufficientRole, http.StatusForbidden},
	{errRouteNotFound, http.StatusNotFound},

	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrUnknownAccount, http.StatusBadRequest},
	{service.ErrInvalidSecret, http.StatusBadRequest},
	{service.ErrAccountLocked, http.StatusTooManyRequests},
	{service.ErrAdminSelfRegistration, http.StatusForbidden},
	{service.ErrTokenInvalid, http.StatusBadRequest},
	{service.ErrTokenExpired, http.StatusBadRequest},
	{service.ErrBadSignature, http.StatusUnauthorized},
	{service.ErrSessionExpired, http.StatusUnauthorized},
	{service.ErrAccountNotFound, http.StatusUnauthorized},

	{store.ErrEmailAlreadyExists, http.StatusConflict},
}

func statusFromError(err error) int {
	for _, e := range errorStatusTable {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with an [models.ErrorResponse].
// Server errors never expose their cause to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	response := models.ErrorResponse{Error: err.Error()}
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
		response.Error = http.StatusText(status)
	} else {
		log.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	var invalidSecret *service.InvalidSecretError
	if errors.As(err, &invalidSecret) {
		remaining := invalidSecret.AttemptsRemaining
		response.AttemptsRemaining = &remaining
	}

	var locked *service.AccountLockedError
	if errors.As(err, &locked) {
		seconds := retryAfterSeconds(locked.RetryAfter)
		response.RetryAfterSeconds = &seconds
		w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
	}

	utils.WriteJSON(w, response, status)
}

// retryAfterSeconds rounds d up to whole seconds, never below one.
func retryAfterSeconds(d time.Duration) int64 {
	seconds := int64((d + time.Second - 1) / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}

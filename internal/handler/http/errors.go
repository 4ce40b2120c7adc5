// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidJSON is returned when a request body can not be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrNotAuthenticated is returned when a protected handler runs without
	// an authenticated account in the request context.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInsufficientRole is returned by the role guard.
	ErrInsufficientRole = errors.New("insufficient role")

	errRouteNotFound = errors.New("route not found")
)

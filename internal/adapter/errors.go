// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("mail provider unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("mail provider internal error")
	ErrBadGateway          = errors.New("bad gateway")

	ErrMessageRejected = errors.New("message rejected by mail provider")
	ErrEmptyRecipient  = errors.New("message has no recipient")
	ErrRenderingMail   = errors.New("error rendering mail template")
)

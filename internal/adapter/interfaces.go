// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides outbound integrations of the newsroom server.
//
// The primary abstraction is [MailSender], which decouples the services from
// the mail provider. The package ships a Mailjet v3.1 implementation
// ([NewMailjetSender]) and a log-only fallback ([NewLogMailSender]) used when
// no API key is configured. [NewMailSender] picks one of them from the
// configuration.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for provider-agnostic error
// handling (e.g. [ErrUnauthorized] for 401, [ErrTooManyRequests] for 429).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-newsroom/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mail_sender_mock.go -package=mock

// MailSender delivers a rendered message to its recipient.
//
// Send is called from background workers only, never while a database
// transaction is open. Implementations must honour ctx cancellation.
type MailSender interface {
	Send(ctx context.Context, message models.MailMessage) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// MailKind identifies the template of an outbound message.
type MailKind string

const (
	MailWelcome       MailKind = "welcome"
	MailPasswordReset MailKind = "password_reset"
)

// MailMessage is a rendered outbound email.
type MailMessage struct {
	Kind MailKind

	ToEmail string
	ToName  string

	Subject  string
	HTMLBody string
	TextBody string
}

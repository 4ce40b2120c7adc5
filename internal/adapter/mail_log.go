// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"

	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/models"
)

// logMailSender writes message metadata to the log instead of delivering
// the message. Bodies carry reset tokens and are never logged.
type logMailSender struct {
	logger *logger.Logger
}

func NewLogMailSender(logger *logger.Logger) MailSender {
	return &logMailSender{logger: logger}
}

func (s *logMailSender) Send(ctx context.Context, message models.MailMessage) error {
	if message.ToEmail == "" {
		return ErrEmptyRecipient
	}

	s.logger.Info().
		Str("kind", string(message.Kind)).
		Str("to", message.ToEmail).
		Str("subject", message.Subject).
		Msg("mail delivery is disabled, message logged")

	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"github.com/MKhiriev/go-newsroom/internal/config"
	"github.com/MKhiriev/go-newsroom/internal/logger"
)

// NewMailSender returns the Mailjet sender when an API key is configured
// and the log-only sender otherwise.
func NewMailSender(cfg config.Adapter, logger *logger.Logger) (MailSender, error) {
	if cfg.MailAPIKey == "" {
		logger.Warn().Msg("mail API key is not configured, outbound mail will only be logged")
		return NewLogMailSender(logger), nil
	}

	return NewMailjetSender(cfg, logger)
}

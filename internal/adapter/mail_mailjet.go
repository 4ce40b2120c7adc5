// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-newsroom/internal/config"
	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/internal/utils"
	"github.com/MKhiriev/go-newsroom/models"
)

const mailjetSendPath = "/v3.1/send"

type mailjetSender struct {
	client *utils.HTTPClient

	senderEmail string
	senderName  string

	logger *logger.Logger
}

// NewMailjetSender constructs a [MailSender] that talks to the Mailjet Send
// API v3.1 with HTTP basic auth (API key and secret key).
//
// Returns an error if cfg.MailAPIURL cannot be parsed as a URL or the
// sender address is missing.
func NewMailjetSender(cfg config.Adapter, logger *logger.Logger) (MailSender, error) {
	baseURL, err := normalizeBaseURL(cfg.MailAPIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mail API address: %w", err)
	}
	if cfg.MailSenderEmail == "" {
		return nil, fmt.Errorf("mail sender email is not configured")
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)
	client.SetBasicAuth(cfg.MailAPIKey, cfg.MailSecretKey)

	return &mailjetSender{
		client:      client,
		senderEmail: cfg.MailSenderEmail,
		senderName:  cfg.MailSenderName,
		logger:      logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

type mailjetAddress struct {
	Email string `json:"Email"`
	Name  string `json:"Name,omitempty"`
}

type mailjetMessage struct {
	From     mailjetAddress   `json:"From"`
	To       []mailjetAddress `json:"To"`
	Subject  string           `json:"Subject"`
	TextPart string           `json:"TextPart,omitempty"`
	HTMLPart string           `json:"HTMLPart,omitempty"`
	CustomID string           `json:"CustomID,omitempty"`
}

type mailjetSendRequest struct {
	Messages []mailjetMessage `json:"Messages"`
}

type mailjetSendResponse struct {
	Messages []struct {
		Status string `json:"Status"`
		Errors []struct {
			ErrorMessage string `json:"ErrorMessage"`
		} `json:"Errors"`
	} `json:"Messages"`
}

// Send implements [MailSender]. It POSTs a single message to
// POST /v3.1/send. A 2xx answer whose message status is not "success" is
// reported as [ErrMessageRejected].
func (s *mailjetSender) Send(ctx context.Context, message models.MailMessage) error {
	if message.ToEmail == "" {
		return ErrEmptyRecipient
	}

	request := mailjetSendRequest{
		Messages: []mailjetMessage{{
			From:     mailjetAddress{Email: s.senderEmail, Name: s.senderName},
			To:       []mailjetAddress{{Email: message.ToEmail, Name: message.ToName}},
			Subject:  message.Subject,
			TextPart: message.TextBody,
			HTMLPart: message.HTMLBody,
			CustomID: string(message.Kind),
		}},
	}

	var response mailjetSendResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		Post(mailjetSendPath)
	if err != nil {
		return fmt.Errorf("mail send request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	for _, m := range response.Messages {
		if m.Status == "success" {
			continue
		}
		reason := m.Status
		if len(m.Errors) > 0 {
			reason = m.Errors[0].ErrorMessage
		}
		return fmt.Errorf("%w: %s", ErrMessageRejected, reason)
	}

	s.logger.Debug().
		Str("kind", string(message.Kind)).
		Int("status", resp.StatusCode()).
		Msg("mail delivered to provider")
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/MKhiriev/go-newsroom/models"
)

const mailLayout = `<html>
  <body style="font-family: Arial, sans-serif; color: #333; padding: 20px;">
    <div style="max-width: 600px; margin: auto; border: 1px solid #ddd; border-radius: 10px; padding: 20px;">
      {{template "content" .}}
      <p>Kind regards,<br><strong>The SN-52 team</strong></p>
    </div>
  </body>
</html>`

var (
	welcomeTemplate = mustMailTemplate("welcome", `<h2 style="color: #004aad;">Hello {{.Name}}!</h2>
      <p>Your <strong>SN-52</strong> account has been created.</p>
      <p>Thank you for joining our digital newspaper.</p>`)

	passwordResetTemplate = mustMailTemplate("password_reset", `<h2 style="color: #004aad;">Reset your password</h2>
      <p>Hello {{.Name}},</p>
      <p>We received a request to reset your <strong>SN-52</strong> password.</p>
      <a href="{{.Link}}" style="background-color:#004aad; color:white; padding:10px 20px; border-radius:5px; text-decoration:none; font-weight:bold;">Reset password</a>
      <p style="margin-top:20px;">This link expires in {{.ValidFor}}.</p>
      <p>If you did not ask for this, ignore this message.</p>`)
)

type welcomeData struct {
	Name string
}

type passwordResetData struct {
	Name     string
	Link     string
	ValidFor string
}

// NewWelcomeMail renders the message sent after registration.
func NewWelcomeMail(account models.Account) (models.MailMessage, error) {
	name := displayName(account)
	html, err := render(welcomeTemplate, welcomeData{Name: name})
	if err != nil {
		return models.MailMessage{}, err
	}

	return models.MailMessage{
		Kind:     models.MailWelcome,
		ToEmail:  account.Email,
		ToName:   name,
		Subject:  "Welcome to SN-52!",
		HTMLBody: html,
		TextBody: fmt.Sprintf("Hello %s!\n\nYour SN-52 account has been created.\n", name),
	}, nil
}

// NewPasswordResetMail renders the message carrying the reset link. validFor
// is the lifetime of the token, shown to the reader.
func NewPasswordResetMail(account models.Account, link string, validFor time.Duration) (models.MailMessage, error) {
	name := displayName(account)
	data := passwordResetData{Name: name, Link: link, ValidFor: humanDuration(validFor)}
	html, err := render(passwordResetTemplate, data)
	if err != nil {
		return models.MailMessage{}, err
	}

	return models.MailMessage{
		Kind:     models.MailPasswordReset,
		ToEmail:  account.Email,
		ToName:   name,
		Subject:  "Password reset - SN-52",
		HTMLBody: html,
		TextBody: fmt.Sprintf("Hello %s,\n\nOpen the link below to reset your password:\n%s\n\nThe link expires in %s.\n",
			name, link, data.ValidFor),
	}, nil
}

// mustMailTemplate wraps content into the shared layout.
func mustMailTemplate(name, content string) *template.Template {
	t := template.Must(template.New(name).Parse(mailLayout))
	template.Must(t.New("content").Parse(content))
	return t
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRenderingMail, err)
	}
	return buf.String(), nil
}

func displayName(account models.Account) string {
	name := strings.TrimSpace(account.FirstName + " " + account.LastName)
	if name == "" {
		return account.Email
	}
	return name
}

// humanDuration prints whole hours or minutes: "1 hour", "30 minutes".
func humanDuration(d time.Duration) string {
	unit, n := "minute", int64(d/time.Minute)
	if d >= time.Hour && d%time.Hour == 0 {
		unit, n = "hour", int64(d/time.Hour)
	}
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Reference lockout policy and token lifetimes.
const (
	DefaultLockThreshold      = 3
	DefaultLockDuration       = 15 * time.Minute
	DefaultTokenDuration      = 24 * time.Hour
	DefaultResetTokenDuration = time.Hour
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-newsroom",
			TokenDuration: DefaultTokenDuration,
			LogLevel:      "info",
		},
		Auth: Auth{
			LockThreshold:      DefaultLockThreshold,
			LockDuration:       DefaultLockDuration,
			ResetTokenDuration: DefaultResetTokenDuration,
			ResetLinkBase:      "http://localhost:5173/reset-password",
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Adapter: Adapter{
			MailAPIURL:     "https://api.mailjet.com",
			MailSenderName: "SN-52 Noticias",
			RequestTimeout: 10 * time.Second,
		},
		Workers: Workers{
			MailQueueSize: 100,
		},
	}
}

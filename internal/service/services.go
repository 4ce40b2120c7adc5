// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-newsroom/internal/config"
	"github.com/MKhiriev/go-newsroom/internal/crypto"
	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/internal/store"
)

type Services struct {
	AuthService          AuthService
	PasswordResetService PasswordResetService
	AppInfoService       AppInfoService
}

// NewServices builds every service with request validation in front.
func NewServices(repositories *store.Repositories, hasher crypto.SecretHasher, mailQueue MailQueue, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthService(repositories.AccountRepository, hasher, mailQueue, cfg, logger)
	passwordResetService := NewPasswordResetService(repositories.AccountRepository, hasher, mailQueue, cfg, logger)

	return &Services{
		AuthService:          NewAuthValidationService().Wrap(authService),
		PasswordResetService: NewPasswordResetValidationService().Wrap(passwordResetService),
		AppInfoService:       appInfoService,
	}, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-newsroom/internal/config"
	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/internal/mock"
	"github.com/MKhiriev/go-newsroom/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// AppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "v1.2.3-beta+build.42"}, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, "v1.2.3-beta+build.42", svc.GetAppVersion(context.Background()))
}

func TestNewAppInfoService_EmptyVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{}, logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

// ─────────────────────────────────────────────
// NewServices
// ─────────────────────────────────────────────

func TestNewServices_WrapsWithValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repositories := &store.Repositories{AccountRepository: mock.NewMockAccountRepository(ctrl)}

	services, err := NewServices(repositories, mock.NewMockSecretHasher(ctrl), &recordingQueue{}, testConfig(), logger.Nop())

	require.NoError(t, err)
	assert.IsType(t, &AuthValidationService{}, services.AuthService)
	assert.IsType(t, &PasswordResetValidationService{}, services.PasswordResetService)
	assert.Equal(t, "1.0.0", services.AppInfoService.GetAppVersion(context.Background()))
}

func TestNewServices_NoVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig()
	cfg.App.Version = ""

	services, err := NewServices(&store.Repositories{}, mock.NewMockSecretHasher(ctrl), &recordingQueue{}, cfg, logger.Nop())

	assert.Nil(t, services)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

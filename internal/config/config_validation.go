// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks the merged configuration before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.HashKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Auth.LockThreshold < 1 {
		return fmt.Errorf("%w: lock threshold must be at least 1", ErrInvalidAuthConfigs)
	}
	if cfg.Auth.LockDuration <= 0 || cfg.Auth.ResetTokenDuration <= 0 {
		return fmt.Errorf("%w: durations must be positive", ErrInvalidAuthConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.MailQueueSize < 1 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

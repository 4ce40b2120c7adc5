// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// UUIDGenerator produces time-ordered identifiers for traces.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// NewResetToken returns a random version 4 UUID (122 random bits).
// Unlike Generate it never falls back and carries no timestamp.
func NewResetToken() (string, error) {
	token, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("error generating reset token: %w", err)
	}

	return token.String(), nil
}

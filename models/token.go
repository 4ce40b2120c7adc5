// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token.
//
// Standard claims carry the issuer, the account identifier (sub), the
// issue instant and the expiry. Role is a private claim.
type Claims struct {
	jwt.RegisteredClaims

	Role Role `json:"role"`
}

// AccountID parses the subject claim as a base-10 account identifier.
func (c *Claims) AccountID() (int64, error) {
	sub, err := c.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting AccountID from token: %w", err)
	}

	accountID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting AccountID from token to int64: %w", err)
	}

	return accountID, nil
}

// Token is an issued session token.
type Token struct {
	// SignedString is the compact JWS form sent to clients.
	SignedString string

	AccountID int64
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// String returns the compact serialization of the token.
func (t Token) String() string {
	return t.SignedString
}

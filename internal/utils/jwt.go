// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-newsroom/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrBadSignature covers every token that was not produced by this
	// process with the current key: tampered, corrupted, wrong algorithm,
	// wrong issuer or missing subject.
	ErrBadSignature = errors.New("token signature is invalid")
	// ErrTokenExpired is returned for an authentic token whose expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
)

// IssueToken creates a signed HMAC-SHA256 session token.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the account ID encoded as a string
//   - IssuedAt  (iat): issuedAt
//   - ExpiresAt (exp): issuedAt plus ttl
//   - role:            the account role
//
// JWT timestamps have second precision, so issuedAt is truncated.
//
// Example usage:
//
//	token, err := utils.IssueToken("secret", "go-newsroom", 42, models.RoleReader, time.Now(), 24*time.Hour)
func IssueToken(signKey, issuer string, accountID int64, role models.Role, issuedAt time.Time, ttl time.Duration) (models.Token, error) {
	if issuer == "" || ttl <= 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	iat := jwt.NewNumericDate(issuedAt)
	exp := jwt.NewNumericDate(issuedAt.Add(ttl))

	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(accountID, 10),
			IssuedAt:  iat,
			ExpiresAt: exp,
		},
		Role: role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		SignedString: signed,
		AccountID:    accountID,
		Role:         role,
		IssuedAt:     iat.Time,
		ExpiresAt:    exp.Time,
	}, nil
}

// ValidateToken verifies tokenString at the instant now and returns its claims.
//
// The signature is verified before any claim. A token is expired when
// now >= exp. Expiry yields [ErrTokenExpired]; every other failure yields
// [ErrBadSignature]. Both are wrapped together with the parser error.
func ValidateToken(tokenString, signKey, issuer string, now time.Time) (models.Claims, error) {
	claims := &models.Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Claims{}, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return models.Claims{}, fmt.Errorf("%w: %w", ErrBadSignature, err)
	}

	if _, err = claims.AccountID(); err != nil {
		return models.Claims{}, fmt.Errorf("%w: %w", ErrBadSignature, err)
	}

	return *claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", errors.New("invalid authorization header")
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", errors.New("invalid authorization header")
	}

	return token, nil
}

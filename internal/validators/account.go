// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-newsroom/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldEmail targets the login identifier.
	FieldEmail = "email"

	// FieldPassword targets the presence and upper bound of a supplied secret.
	FieldPassword = "password"

	// FieldPasswordStrength targets the minimal length of a secret that is
	// about to be stored. Not applied at login so that accounts created under
	// an older policy can still sign in.
	FieldPasswordStrength = "password_strength"

	FieldFirstName = "first_name"
	FieldLastName  = "last_name"

	// FieldRole targets the requested role of a new account.
	FieldRole = "role"

	// FieldToken targets a password reset token.
	FieldToken = "token"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxEmailLength    = 254
	MaxNameLength     = 100
)

// AccountValidator checks account related requests before they reach the
// authentication core.
type AccountValidator struct {
}

func NewAccountValidator() Validator {
	return &AccountValidator{}
}

func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value, fields...)

	case models.UpdateProfileRequest:
		return v.validateUpdateProfileRequest(value, fields...)
	case *models.UpdateProfileRequest:
		return v.validateUpdateProfileRequest(*value, fields...)

	case models.PasswordResetRequest:
		return v.validatePasswordResetRequest(value, fields...)
	case *models.PasswordResetRequest:
		return v.validatePasswordResetRequest(*value, fields...)

	case models.PasswordResetConfirm:
		return v.validatePasswordResetConfirm(value, fields...)
	case *models.PasswordResetConfirm:
		return v.validatePasswordResetConfirm(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateRegisterRequest(request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldPasswordStrength, FieldFirstName, FieldLastName, FieldRole}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldEmail:
			err = validateEmail(request.Email)
		case FieldPassword:
			err = validatePassword(request.Password)
		case FieldPasswordStrength:
			err = validatePasswordStrength(request.Password)
		case FieldFirstName:
			err = validateName(request.FirstName, ErrEmptyFirstName)
		case FieldLastName:
			err = validateName(request.LastName, ErrEmptyLastName)
		case FieldRole:
			err = validateRegistrationRole(request.Role)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *AccountValidator) validateLoginRequest(request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldEmail:
			err = validateEmail(request.Email)
		case FieldPassword:
			err = validatePassword(request.Password)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *AccountValidator) validateUpdateProfileRequest(request models.UpdateProfileRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldFirstName, FieldLastName}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldEmail:
			err = validateEmail(request.Email)
		case FieldFirstName:
			err = validateName(request.FirstName, ErrEmptyFirstName)
		case FieldLastName:
			err = validateName(request.LastName, ErrEmptyLastName)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *AccountValidator) validatePasswordResetRequest(request models.PasswordResetRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := validateEmail(request.Email); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validatePasswordResetConfirm(request models.PasswordResetConfirm, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldToken, FieldPassword, FieldPasswordStrength}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldToken:
			if strings.TrimSpace(request.Token) == "" {
				err = ErrEmptyToken
			}
		case FieldPassword:
			err = validatePassword(request.NewPassword)
		case FieldPasswordStrength:
			err = validatePasswordStrength(request.NewPassword)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// validateEmail accepts a bare RFC 5322 address only; display names and
// surrounding spaces are rejected.
func validateEmail(email string) error {
	if email == "" || len(email) > MaxEmailLength {
		return ErrInvalidEmail
	}

	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email || address.Name != "" {
		return ErrInvalidEmail
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if utf8.RuneCountInString(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func validatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func validateName(name string, errEmpty error) error {
	if strings.TrimSpace(name) == "" {
		return errEmpty
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// validateRegistrationRole allows the zero role (reader is assigned) and
// any known role except admin.
func validateRegistrationRole(role models.Role) error {
	if role == 0 {
		return nil
	}
	if !role.Valid() {
		return ErrInvalidRole
	}
	if role == models.RoleAdmin {
		return ErrRoleNotAllowed
	}
	return nil
}

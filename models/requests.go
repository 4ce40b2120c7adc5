// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Photo     string `json:"photo,omitempty"`
	Role      Role   `json:"role_id,omitempty"`
}

// UpdateProfileRequest is the body of PUT /auth/me. Names and email are
// replaced; an empty Photo keeps the current picture.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Photo     string `json:"photo,omitempty"`
}

// PasswordResetRequest is the body of POST /auth/password-reset/request.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirm is the body of POST /auth/password-reset/confirm.
type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads of the authentication API
// before they reach the services: email shape, password length and strength,
// names, role and reset token presence.
//
// Validation is kept out of the transport and storage layers; services are
// wrapped by validating decorators that call a [Validator].
package validators

import "context"

// Validator checks a value. When fields are given only those checks run;
// otherwise the default set for the value's type is applied.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}

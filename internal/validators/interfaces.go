// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks storefront input before it reaches the
// repositories.
//
// A single [Validator] handles every request model. Callers may restrict a
// check to specific fields, e.g. only the password on a password change:
//
//	err := v.Validate(ctx, user, validators.FieldPassword)
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks auth and property requests before they reach
// the services. A failed check returns [FieldErrors] naming every bad field,
// so one response can report all problems of a request.
package validators

import "context"

// Validator checks obj. When fields are given only those fields are
// checked; otherwise all of them are.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}

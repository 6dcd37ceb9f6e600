package service

import "errors"

var (
	// ErrValidation marks a rejected request. Nothing is persisted; the
	// caller re-prompts the user.
	ErrValidation = errors.New("validation failed")

	// ErrNotOffered means no fee type matches the requested scope. Callers
	// must treat it as "not offered", not as a zero-amount fee.
	ErrNotOffered = errors.New("fee type not offered")

	// ErrAmbiguousDiscount is returned under the "error" tie-break policy
	// when several discounts cover the same student, fee type and date.
	ErrAmbiguousDiscount = errors.New("multiple active discounts match")
)

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	// ErrNotFound covers both a missing row and an actor/role mismatch on
	// the (document part, actor) selector. The two cases are deliberately
	// indistinguishable to callers.
	ErrNotFound = errors.New("no related data")

	// ErrConflict signals an optimistic-lock miss on a versioned write.
	// The caller may re-read and retry.
	ErrConflict = errors.New("version conflict")

	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")

	// ErrWriteFailed means the store accepted the statement but persisted
	// fewer rows than the write asked for.
	ErrWriteFailed = errors.New("write failed")

	// ErrUpstream wraps failures from external collaborators (rating
	// service, broker connection).
	ErrUpstream = errors.New("upstream failure")

	// ErrEmptyAggregate signals an aggregate computed over zero rows.
	ErrEmptyAggregate = errors.New("empty aggregate")

	// ErrEventDispatch signals that a stage write succeeded but the
	// completion check or the event handoff failed afterwards. The write
	// is durable; the downstream notification may be missing and the
	// caller needs a compensating re-check.
	ErrEventDispatch = errors.New("event dispatch failed")
)

// ValidationErrorf builds an input validation error for a single field.
func ValidationErrorf(field, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", field, fmt.Sprintf(format, args...), ErrValidation)
}

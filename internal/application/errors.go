package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/client-scheduler/internal/persistence"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrInvalidCredentials is returned when login validation fails.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
)

// ValidationError reports a user-correctable input problem. Reason holds the
// exact message shown to the user; validation is fail-fast, so a single reason
// is carried, corresponding to the first check that failed.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface, returning the user-facing reason.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return v.Reason
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// StoreError reports an underlying persistence failure. It is a distinct kind
// from ValidationError so callers can render a generic failure message instead
// of a field-specific one.
type StoreError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (s *StoreError) Error() string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("store operation %s failed: %v", s.Op, s.Err)
}

// Unwrap exposes the underlying persistence error.
func (s *StoreError) Unwrap() error {
	if s == nil {
		return nil
	}
	return s.Err
}

// PartialCascadeError reports the dependent appointments that could not be
// removed during a cascading customer delete. The coordinator keeps deleting
// past individual failures, so every failed id is listed.
type PartialCascadeError struct {
	CustomerID string
	FailedIDs  []string
}

// Error implements the error interface.
func (p *PartialCascadeError) Error() string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("failed to delete appointments for customer %s: %s",
		p.CustomerID, strings.Join(p.FailedIDs, ", "))
}

// wrapStore maps a persistence failure into the application error taxonomy.
// A missing record surfaces as ErrNotFound; anything else becomes a
// StoreError carrying the operation name.
func wrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return &StoreError{Op: op, Err: err}
}

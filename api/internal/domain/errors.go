package domain

import (
	"errors"
	"fmt"
)

// ProviderError is returned when the chain data provider is unreachable,
// timed out or answered with an error or malformed payload.
type ProviderError struct {
	Op      string
	Address string
	Err     error
}

func NewProviderError(op, address string, err error) *ProviderError {
	return &ProviderError{Op: op, Address: address, Err: err}
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s %s: %v", e.Op, e.Address, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// StoreError wraps a persistence failure (constraint violation, lost connection).
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError marks an alert whose threshold cannot be evaluated.
type ValidationError struct {
	AlertID   uint
	Threshold string
	Err       error
}

func NewValidationError(alertID uint, threshold string, err error) *ValidationError {
	return &ValidationError{AlertID: alertID, Threshold: threshold, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("alert %d: invalid threshold %q: %v", e.AlertID, e.Threshold, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

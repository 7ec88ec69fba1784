package store

import (
	"errors"
	"fmt"
)

// StoreError represents a failed store or domain operation.
//
// Store errors include:
//   - Key lookup misses and duplicate-key insert collisions
//   - Capacity exhaustion (the backing array is fixed at Capacity records)
//   - Inventory shortfalls surfaced by the billing workflow
//   - Rejected input (blank or non-positive required fields)
//   - Snapshot I/O failures and detected snapshot corruption
//
// StoreError includes structured fields for diagnostics and user-facing
// messages; the enclosing command always regains control.
type StoreError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Entity names the affected store ("product", "customer", ...).
	Entity string

	// Key identifies the affected record, when one is involved.
	Key string

	// Err is the underlying cause (optional, I/O errors mostly).
	Err error
}

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a key lookup miss.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeDuplicateKey indicates an insert collided with a live record.
	ErrCodeDuplicateKey ErrorCode = "DUPLICATE_KEY"

	// ErrCodeStoreFull indicates the store is at capacity.
	ErrCodeStoreFull ErrorCode = "STORE_FULL"

	// ErrCodeInsufficientStock indicates a requested quantity exceeds stock.
	ErrCodeInsufficientStock ErrorCode = "INSUFFICIENT_STOCK"

	// ErrCodeInvalidInput indicates a blank or out-of-range required field.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodeIO indicates a snapshot read or write failed.
	ErrCodeIO ErrorCode = "IO_ERROR"

	// ErrCodeCorruptStore indicates a snapshot failed structural validation.
	// The store is reset to empty; the condition is surfaced rather than
	// silently swallowed so callers can distinguish "fresh" from "lost".
	ErrCodeCorruptStore ErrorCode = "CORRUPT_STORE"
)

// Error implements the error interface.
func (e *StoreError) Error() string {
	switch {
	case e.Entity != "" && e.Key != "":
		return fmt.Sprintf("%s: %s (entity=%s, key=%s)", e.Code, e.Message, e.Entity, e.Key)
	case e.Entity != "":
		return fmt.Sprintf("%s: %s (entity=%s)", e.Code, e.Message, e.Entity)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying cause, if any.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// CodeOf extracts the ErrorCode from an error chain.
// Returns the empty code if the chain contains no StoreError.
func CodeOf(err error) ErrorCode {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsNotFound reports whether err is a key lookup miss.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

// IsDuplicateKey reports whether err is an insert collision.
func IsDuplicateKey(err error) bool {
	return CodeOf(err) == ErrCodeDuplicateKey
}

// IsStoreFull reports whether err is a capacity failure.
func IsStoreFull(err error) bool {
	return CodeOf(err) == ErrCodeStoreFull
}

// IsCorrupt reports whether err is a snapshot corruption failure.
func IsCorrupt(err error) bool {
	return CodeOf(err) == ErrCodeCorruptStore
}

// NewNotFoundError creates a StoreError for a lookup miss.
func NewNotFoundError(entity, key string) *StoreError {
	return &StoreError{
		Code:    ErrCodeNotFound,
		Message: "no such record",
		Entity:  entity,
		Key:     key,
	}
}

// NewDuplicateKeyError creates a StoreError for an insert collision.
func NewDuplicateKeyError(entity, key string) *StoreError {
	return &StoreError{
		Code:    ErrCodeDuplicateKey,
		Message: "a record with this key already exists",
		Entity:  entity,
		Key:     key,
	}
}

// NewStoreFullError creates a StoreError for capacity exhaustion.
func NewStoreFullError(entity string, capacity int) *StoreError {
	return &StoreError{
		Code:    ErrCodeStoreFull,
		Message: fmt.Sprintf("store is at capacity (%d records)", capacity),
		Entity:  entity,
	}
}

// NewInvalidInputError creates a StoreError for rejected input.
func NewInvalidInputError(entity, message string) *StoreError {
	return &StoreError{
		Code:    ErrCodeInvalidInput,
		Message: message,
		Entity:  entity,
	}
}

// NewCorruptStoreError creates a StoreError for a snapshot that failed
// structural validation.
func NewCorruptStoreError(entity, message string) *StoreError {
	return &StoreError{
		Code:    ErrCodeCorruptStore,
		Message: message,
		Entity:  entity,
	}
}

// NewIOError wraps a filesystem failure during snapshot save or load.
func NewIOError(entity string, err error) *StoreError {
	return &StoreError{
		Code:    ErrCodeIO,
		Message: "snapshot I/O failed",
		Entity:  entity,
		Err:     err,
	}
}

// Package errors provides custom error types for the filmdesk system.
// These errors enable programmatic error checking by callers (CLI, tests)
// and carry enough context to correct bad input: field names, allowed
// ranges, and current stock levels.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the filmdesk system
var (
	// ErrNotFound indicates that a referenced film or user is absent
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientStock indicates a sale quantity exceeding available stock
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrPersistence indicates a document write failure
	ErrPersistence = errors.New("persistence failure")

	// ErrProtocol indicates a malformed or missing recommendation response
	ErrProtocol = errors.New("protocol violation")

	// ErrProcess indicates a failed external process invocation
	ErrProcess = errors.New("external process failure")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// InsufficientStockError reports a sale quantity larger than the film's
// current stock. Stock carries the pre-sale stock level for display.
type InsufficientStockError struct {
	Title     string
	Requested int
	Stock     int
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, current stock %d", e.Title, e.Requested, e.Stock)
}

// Is implements errors.Is support
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(title string, requested, stock int) *InsufficientStockError {
	return &InsufficientStockError{Title: title, Requested: requested, Stock: stock}
}

// PersistenceError represents a failure writing or reading a persisted document
type PersistenceError struct {
	Operation string // "read", "write", "create"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("persistence error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("persistence error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// NewPersistenceError creates a new PersistenceError
func NewPersistenceError(operation, path string, err error) *PersistenceError {
	return &PersistenceError{Operation: operation, Path: path, Err: err}
}

// ProtocolError represents a malformed or missing recommendation response
type ProtocolError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ProtocolError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("protocol error reading %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("protocol error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ProtocolError) Is(target error) bool {
	return target == ErrProtocol
}

// NewProtocolError creates a new ProtocolError
func NewProtocolError(path, message string, err error) *ProtocolError {
	return &ProtocolError{Path: path, Message: message, Err: err}
}

// ProcessError represents an error from an external process or command
type ProcessError struct {
	Operation string // What operation was being performed
	Command   string // The command that was executed
	Output    string // Stderr output from the process
	ExitCode  int    // Exit code if available
	Err       error  // Underlying error
}

// Error implements the error interface
func (e *ProcessError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("process error during %s (command: %s): %v\nOutput: %s", e.Operation, e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("process error during %s (command: %s): %v", e.Operation, e.Command, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ProcessError) Is(target error) bool {
	if target == ErrProcess {
		return true
	}
	return target == ErrTimeout && errors.Is(e.Err, ErrTimeout)
}

// NewProcessError creates a new ProcessError
func NewProcessError(operation, command, output string, err error) *ProcessError {
	return &ProcessError{Operation: operation, Command: command, Output: output, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInsufficientStock checks if an error is an insufficient stock error
func IsInsufficientStock(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}

// IsPersistence checks if an error is a persistence error
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// IsProtocol checks if an error is a recommendation protocol error
func IsProtocol(err error) bool {
	return errors.Is(err, ErrProtocol)
}

// IsProcess checks if an error came from the external recommendation process
func IsProcess(err error) bool {
	return errors.Is(err, ErrProcess)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapPersistence wraps an error as a PersistenceError
func WrapPersistence(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewPersistenceError(operation, path, err)
}

// WrapProtocol wraps an error as a ProtocolError
func WrapProtocol(path string, err error) error {
	if err == nil {
		return nil
	}
	return NewProtocolError(path, err.Error(), err)
}

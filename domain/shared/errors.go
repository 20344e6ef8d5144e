/*
Package shared holds domain concepts used by every subdomain.

Error design:
1. Sentinel errors for errors.Is() checks, no transport concepts attached.
2. DomainError captures the stack at creation time and formats it lazily.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinel errors. Subdomains wrap these with business context.
var (
	// ErrNotFound resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict concurrent modification or unique constraint violation
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput parameter or field validation failure
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized missing or invalid credentials
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden authenticated but not allowed
	ErrForbidden = errors.New("forbidden")

	// ErrBusinessRule a domain rule rejected the operation
	ErrBusinessRule = errors.New("business rule violation")
)

// DomainError is a structured error carrying business context and the stack
// from the point the error was created.
type DomainError struct {
	// Err underlying sentinel for errors.Is()
	Err error

	// Entity name of the entity the error concerns ("product", "order", ...)
	Entity string

	// Message human readable description
	Message string

	// Field optional field name for validation errors
	Field string

	stack []uintptr
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap supports errors.Is() and errors.As()
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured stack on demand (only called when logging)
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack captures the current call stack.
// skip is the number of frames to skip (usually 3: Callers, CaptureStack, NewXxxError).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders stack frames, filtering runtime internals, at most 10 frames
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewDomainError builds a DomainError around a subdomain sentinel.
// The stack starts at the caller of NewDomainError.
func NewDomainError(sentinel error, entity, field, message string) error {
	return &DomainError{
		Err:     sentinel,
		Entity:  entity,
		Field:   field,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewNotFoundError creates a "not found" domain error
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a "conflict" domain error
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a "validation failed" domain error
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewForbiddenError creates a "forbidden" domain error
func NewForbiddenError(entity, reason string) error {
	return &DomainError{
		Err:     ErrForbidden,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewBusinessRuleError creates a domain error for a rejected business operation
func NewBusinessRuleError(entity, reason string) error {
	return &DomainError{
		Err:     ErrBusinessRule,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// Stacker is implemented by errors that can provide their origin stack.
// The API layer uses it to log the point where the error happened.
type Stacker interface {
	Stack() []string
}

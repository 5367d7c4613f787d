package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrorKind classifies a domain failure. None of the kinds are retryable:
// the caller must change the request.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindNotFound    ErrorKind = "not_found"
	KindStructural  ErrorKind = "structural"
	KindIdempotency ErrorKind = "idempotency"
)

// Error is returned by every aggregate method that rejects a request.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is a domain error of the same kind, so callers
// can write errors.Is(err, domain.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation  = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound    = &Error{Kind: KindNotFound, Message: "not found"}
	ErrStructural  = &Error{Kind: KindStructural, Message: "structural violation"}
	ErrIdempotency = &Error{Kind: KindIdempotency, Message: "idempotency violation"}
)

// NewError builds a domain error of the given kind. Layers above the
// aggregate use it to report missing boards and projects.
func NewError(kind ErrorKind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func structuralf(format string, args ...any) error {
	return &Error{Kind: KindStructural, Message: fmt.Sprintf(format, args...)}
}

func idempotencyf(format string, args ...any) error {
	return &Error{Kind: KindIdempotency, Message: fmt.Sprintf(format, args...)}
}

// validateName rejects blank names and names longer than max runes.
func validateName(what, name string, max int) error {
	if strings.TrimSpace(name) == "" {
		return validationf("%s name cannot be empty", what)
	}
	if utf8.RuneCountInString(name) > max {
		return validationf("%s name cannot exceed %d characters", what, max)
	}
	return nil
}

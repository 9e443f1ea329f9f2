package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies failures so transports can map them to statuses.
type ErrorKind int

const (
	// KindInternal is an unexpected failure inside the service.
	KindInternal ErrorKind = iota
	// KindValidation is a malformed or incomplete caller request.
	KindValidation
	// KindUpstream is a failure of the completion service.
	KindUpstream
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error is a classified service error.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns a validation error with a caller-facing message.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Upstream wraps a completion service failure.
func Upstream(op string, err error) error {
	return &Error{Kind: KindUpstream, Message: op, Err: err}
}

// KindOf reports the kind of err, KindInternal when unclassified.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// RequireText checks name/value pairs and reports the first blank value.
func RequireText(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return Validation("field %q cannot be empty", pairs[i])
		}
	}
	return nil
}

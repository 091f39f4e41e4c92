package dates

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a date token could not be normalized.
type ErrorKind string

const (
	KindUnrecognizedShape ErrorKind = "unrecognized_shape"
	KindUnknownQuarter    ErrorKind = "unknown_quarter"
	KindInvalidDate       ErrorKind = "invalid_date"
)

// Sentinels for errors.Is matching against a *FormatError.
var (
	ErrUnrecognizedShape = errors.New("unrecognized date shape")
	ErrUnknownQuarter    = errors.New("unknown quarter code")
	ErrInvalidDate       = errors.New("invalid calendar date")
)

// FormatError is returned when a token matches neither recognized date
// shape or does not describe a real calendar day.
type FormatError struct {
	Token string
	Kind  ErrorKind
	Cause error
}

// Error implements the error interface
func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("date %q: %s: %v", e.Token, e.Kind, e.Cause)
	}
	return fmt.Sprintf("date %q: %s", e.Token, e.Kind)
}

// Unwrap returns the underlying parse error, if any
func (e *FormatError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for this error's kind.
func (e *FormatError) Is(target error) bool {
	switch target {
	case ErrUnrecognizedShape:
		return e.Kind == KindUnrecognizedShape
	case ErrUnknownQuarter:
		return e.Kind == KindUnknownQuarter
	case ErrInvalidDate:
		return e.Kind == KindInvalidDate
	}
	return false
}

func newFormatError(token string, kind ErrorKind, cause error) *FormatError {
	return &FormatError{Token: token, Kind: kind, Cause: cause}
}

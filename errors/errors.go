package errors

import (
	// Go Internal Packages
	"errors"
	"fmt"
	"strings"
)

type Kind uint8

const (
	Other Kind = iota
	Invalid
	NotFound
	Internal
)

// Error carries a kind so that transport layers can map failures to
// status codes without string matching.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E wraps err with a kind and a message. err may be nil.
func E(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain,
// or Other when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}

// ValidationErrors collects per-field violations so callers can report
// every problem at once instead of stopping at the first.
type ValidationErrors struct {
	violations []string
}

func ValidationErrs() *ValidationErrors {
	return &ValidationErrors{}
}

// Add records one violation against the named field.
func (v *ValidationErrors) Add(field, msg string) {
	v.violations = append(v.violations, fmt.Sprintf("%s %s", field, msg))
}

// Empty reports whether no violations were recorded.
func (v *ValidationErrors) Empty() bool {
	return len(v.violations) == 0
}

// Err returns all recorded violations as a single error, or nil when
// there are none.
func (v *ValidationErrors) Err() error {
	if len(v.violations) == 0 {
		return nil
	}
	return errors.New(strings.Join(v.violations, ", "))
}

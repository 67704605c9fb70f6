// Package apperror defines the error taxonomy surfaced to API clients.
// Usecase packages declare their sentinel errors with New so that the HTTP layer
// can translate any error chain into a status code and a client-safe message.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	// KindInternal covers storage and unexpected failures.
	KindInternal Kind = iota
	// KindValidation covers malformed or missing input fields.
	KindValidation
	// KindUnauthenticated covers a missing or unknown token.
	KindUnauthenticated
	// KindTokenExpired covers a token presented after its expiry instant.
	KindTokenExpired
	// KindForbidden covers role or ownership mismatches.
	KindForbidden
	// KindNotFound covers missing resources and routes.
	KindNotFound
	// KindConflict covers uniqueness violations such as a duplicate email.
	KindConflict
	// KindMethodNotAllowed is only produced by the router.
	KindMethodNotAllowed
)

// InternalMessage is the generic phrase shown for internal failures.
const InternalMessage = "Ooops"

var kindNames = map[Kind]string{
	KindInternal:         "internal",
	KindValidation:       "validation",
	KindUnauthenticated:  "unauthenticated",
	KindTokenExpired:     "token_expired",
	KindForbidden:        "forbidden",
	KindNotFound:         "not_found",
	KindConflict:         "conflict",
	KindMethodNotAllowed: "method_not_allowed",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Status returns the HTTP status code for the kind.
// Conflict is reported as 400 to stay compatible with existing clients.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthenticated, KindTokenExpired:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified error carrying a client-safe message.
// Err, when set, holds the underlying detail that is only exposed in debug mode.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error without an underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a classified error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation reports every offending field at once.
func Validation(fields ...string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf("Invalid fields: %s", strings.Join(fields, ", ")),
	}
}

// KindOf returns the kind of the first classified error in the chain,
// or KindInternal when the chain carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Describe translates an error chain into the status and message shown to the client.
// Unclassified errors become a generic internal error. In debug mode the
// underlying detail is appended after " - ".
func Describe(err error, debug bool) (int, string) {
	var e *Error
	if !errors.As(err, &e) {
		e = Wrap(KindInternal, InternalMessage, err)
	}

	message := e.Message
	if e.Kind == KindInternal {
		message = InternalMessage
	}
	if debug {
		if detail := detailOf(e); detail != "" {
			message += " - " + detail
		}
	}
	return e.Kind.Status(), message
}

func detailOf(e *Error) string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Kind == KindInternal && e.Message != InternalMessage {
		return e.Message
	}
	return ""
}

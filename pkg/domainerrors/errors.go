// Package domainerrors defines code-carrying errors for the risk category
// domain. Services return these; the HTTP layer maps each code to the
// documented status and writes the message as a plain text body.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for HTTP translation.
type Code string

const (
	// CodeBadRequest marks client precondition failures: malformed
	// identifiers, deleted-at-create, identity reassignment, duplicates.
	CodeBadRequest Code = "bad_request"

	// CodeNotFound marks a well-formed identifier with no matching document.
	// Responses carry an empty body.
	CodeNotFound Code = "not_found"

	// CodeValidation marks entity-rules rejections (enum or format
	// violations). Surfaced as 500, matching the predecessor's contract:
	// validation failures are distinguished from client precondition
	// failures by status code.
	CodeValidation Code = "validation"

	// CodeInternal marks infrastructure faults (store unreachable etc).
	CodeInternal Code = "internal"
)

// Error is a domain error with a classification code and a client-facing
// message. Wrapped causes are preserved for logging but never written to
// responses.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf constructs a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err is a domain error carrying the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// HTTPStatus maps a domain error code to its documented HTTP status.
// Unclassified errors map to 500.
func HTTPStatus(err error) int {
	var de *Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}
	switch de.Code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message to write to a response body. Error
// messages are part of the wire contract and are sent verbatim; not-found
// responses carry no body at all.
func ClientMessage(err error) string {
	var de *Error
	if !errors.As(err, &de) {
		return err.Error()
	}
	if de.Code == CodeNotFound {
		return ""
	}
	return de.Message
}

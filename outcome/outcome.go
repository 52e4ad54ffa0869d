// Package outcome is the only result shape the UI branches on. Transport
// failures, HTTP errors and malformed payloads all end up here as an
// Outcome; nothing past this boundary sees a raw transport error.
package outcome

import "fmt"

// Kind tags an Outcome
type Kind string

const (
	KindOK    Kind = "ok"
	KindError Kind = "error"
)

// Class is the error taxonomy
type Class string

const (
	HTTPError       Class = "http"
	NetworkError    Class = "network"
	ParseError      Class = "parse"
	ValidationError Class = "validation"
)

// Stable error codes produced on the client side. Backend codes pass through untouched.
const (
	CodeUnknown    = "UNKNOWN_ERROR"
	CodeNetwork    = "NETWORK_ERROR"
	CodeParse      = "PARSE_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeRequest    = "REQUEST_ERROR"
)

// Error is the error arm of an Outcome. Status is 0 when no response was obtained.
type Error struct {
	Class   Class  `json:"class"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Outcome is a tagged union of a value and an *Error
type Outcome[T any] struct {
	Kind  Kind
	Value T
	Err   *Error
}

// OK wraps a value
func OK[T any](v T) Outcome[T] {
	return Outcome[T]{Kind: KindOK, Value: v}
}

// Fail wraps an error. A nil error is reported as an unknown failure.
func Fail[T any](err *Error) Outcome[T] {
	if err == nil {
		err = &Error{Class: HTTPError, Code: CodeUnknown, Message: "unknown error"}
	}
	return Outcome[T]{Kind: KindError, Err: err}
}

// Invalid builds a validation failure. No request is made for it.
func Invalid[T any](format string, args ...any) Outcome[T] {
	return Fail[T](&Error{
		Class:   ValidationError,
		Code:    CodeValidation,
		Message: fmt.Sprintf(format, args...),
	})
}

// IsOK reports whether the outcome carries a value
func (o Outcome[T]) IsOK() bool {
	return o.Kind == KindOK
}

// Get returns the value and the error arm; exactly one is meaningful
func (o Outcome[T]) Get() (T, *Error) {
	return o.Value, o.Err
}

// Message returns the error message, or "" for a successful outcome
func (o Outcome[T]) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Message
}

// Map converts the value of a successful outcome; errors pass through unchanged
func Map[A, B any](o Outcome[A], f func(A) B) Outcome[B] {
	if !o.IsOK() {
		return Fail[B](o.Err)
	}
	return OK(f(o.Value))
}

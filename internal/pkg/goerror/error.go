// Package goerror defines the structured error type shared by all modules.
// Usecases wrap failures into typed errors and the HTTP layer renders them
// without inspecting module internals.
package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned by repositories when a row does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned by repositories on uniqueness violations.
	ErrConflict = errors.New("resource conflict")
)

// Type is the coarse classification of an error.
type Type int

const (
	// TypeServer covers infrastructure and programming failures.
	TypeServer Type = iota
	// TypeBusiness covers rejected domain operations.
	TypeBusiness
	// TypeValidation covers malformed or invalid client input.
	TypeValidation
)

var typeNames = map[Type]string{
	TypeServer:     "ERROR_TYPE_SERVER",
	TypeBusiness:   "ERROR_TYPE_BUSINESS",
	TypeValidation: "ERROR_TYPE_VALIDATION",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "ERROR_TYPE_UNKNOWN"
}

// Code is the stable identifier clients can branch on. It also decides the
// HTTP status.
type Code int

const (
	// CodeInternal is an unspecified server failure.
	CodeInternal Code = iota
	// CodeInvalidFormat means the request body could not be parsed.
	CodeInvalidFormat
	// CodeInvalidInput means the request was parsed but failed validation.
	CodeInvalidInput
	// CodeNotFound means the addressed resource does not exist.
	CodeNotFound
	// CodeConflict means the operation collides with existing state.
	CodeConflict
	// CodeTooManyRequest means the caller exceeded a usage limit.
	CodeTooManyRequest
	// CodeUnauthorized means the caller is not authenticated.
	CodeUnauthorized
	// CodeForbidden means the caller lacks permission.
	CodeForbidden
	// CodeTimeout means the operation did not finish in time.
	CodeTimeout
	// CodeUnavailable means a dependency is temporarily down.
	CodeUnavailable
)

var codeNames = map[Code]string{
	CodeInternal:       "ERROR_CODE_INTERNAL",
	CodeInvalidFormat:  "ERROR_CODE_INVALID_FORMAT",
	CodeInvalidInput:   "ERROR_CODE_INVALID_INPUT",
	CodeNotFound:       "ERROR_CODE_NOT_FOUND",
	CodeConflict:       "ERROR_CODE_CONFLICT",
	CodeTooManyRequest: "ERROR_CODE_TOO_MANY_REQUESTS",
	CodeUnauthorized:   "ERROR_CODE_UNAUTHORIZED",
	CodeForbidden:      "ERROR_CODE_FORBIDDEN",
	CodeUnavailable:    "ERROR_CODE_UNAVAILABLE",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "ERROR_CODE_INTERNAL"
}

var codeStatus = map[Code]int{
	CodeInvalidFormat:  http.StatusBadRequest,
	CodeInvalidInput:   http.StatusUnprocessableEntity,
	CodeNotFound:       http.StatusNotFound,
	CodeUnauthorized:   http.StatusUnauthorized,
	CodeForbidden:      http.StatusForbidden,
	CodeTimeout:        http.StatusRequestTimeout,
	CodeTooManyRequest: http.StatusTooManyRequests,
	CodeConflict:       http.StatusConflict,
	CodeUnavailable:    http.StatusServiceUnavailable,
}

// Error carries a wrapped cause, a user-facing message, a type and a code.
// Validation errors may additionally carry per-field messages.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "Validation violation"
	case TypeBusiness:
		return "Logical business not meet with requirement"
	case TypeServer:
		return "Internal error"
	}
	return "Unknown error"
}

// String is the verbose form used in debug logs.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType, e.code, e.msg, e.err,
	)
}

// Msg returns the user-facing message.
func (e *Error) Msg() string { return e.msg }

// Type returns the error classification.
func (e *Error) Type() Type { return e.errType }

// Code returns the stable error code.
func (e *Error) Code() Code { return e.code }

// Fields returns the per-field validation messages, if any.
func (e *Error) Fields() map[string]string { return e.fields }

// Unwrap exposes the cause for errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the error code onto an HTTP status.
func (e *Error) StatusCode() int {
	if status, ok := codeStatus[e.code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NewServer wraps an unexpected failure. The client sees a generic message;
// the cause stays available for logging.
func NewServer(err error) error {
	return &Error{err: err, msg: "Internal server error", errType: TypeServer, code: CodeInternal}
}

// NewBusiness rejects a domain operation with a message the client may show.
func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

// NewUnavailable marks a failing dependency, rendered as 503.
func NewUnavailable(err error, msg string) error {
	return &Error{err: err, msg: msg, errType: TypeServer, code: CodeUnavailable}
}

// NewInvalidInput builds a validation error. With an underlying error the
// message is generic; without one the variadic arguments are field/message
// pairs attached to the response.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return &Error{err: err, msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput}
	}
	if len(kv)%2 != 0 {
		return &Error{msg: "Invalid request body", errType: TypeValidation, code: CodeInvalidFormat}
	}

	fields := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = kv[i+1]
	}
	return &Error{msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput, fields: fields}
}

// NewInvalidFormat reports an unparseable request body.
func NewInvalidFormat(msgs ...string) error {
	msg := "Invalid request body"
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	return &Error{msg: msg, errType: TypeValidation, code: CodeInvalidFormat}
}

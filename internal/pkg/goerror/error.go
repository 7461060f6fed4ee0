package goerror

import (
	"fmt"
	"net/http"
)

// Type classifies errors by who has to act on them.
type Type int

const (
	// TypeServer is a failure on our side or at an upstream provider.
	TypeServer Type = iota
	// TypeValidation is a request the client has to correct.
	TypeValidation
	// TypeUnavailable is an endpoint switched off by an operator.
	TypeUnavailable
)

// String returns the string representation of the error type.
func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeUnavailable:
		return "ERROR_TYPE_UNAVAILABLE"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used for mapping errors to HTTP status codes.
type Code int

const (
	// CodeInternal represents an internal or unspecified error.
	CodeInternal Code = iota
	// CodeInvalidFormat indicates a request body that cannot be decoded.
	CodeInvalidFormat
	// CodeInvalidInput indicates a decoded request that breaks input rules.
	CodeInvalidInput
	// CodeUnavailable indicates the endpoint is under maintenance.
	CodeUnavailable
)

// String returns the string representation of the error code.
func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "ERROR_CODE_INVALID_FORMAT"
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeUnavailable:
		return "ERROR_CODE_UNAVAILABLE"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error carries a user-facing message and optional field messages next to
// the underlying cause. The cause is for logs only; clients see Msg and
// Fields.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}
	if e.errType == TypeValidation {
		return "Validation violation"
	}
	return "Internal error"
}

// String returns a verbose representation of the error for logging.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s msg=%q cause=%v", e.errType, e.code, e.msg, e.err)
}

// Msg returns the user-facing error message, if set.
func (e *Error) Msg() string { return e.msg }

// Type returns the high-level error type.
func (e *Error) Type() Type { return e.errType }

// Code returns the stable error code.
func (e *Error) Code() Code { return e.code }

// Fields returns field to message pairs, if any.
func (e *Error) Fields() map[string]string { return e.fields }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewServer wraps err as a server failure. The first msg, when given,
// replaces the generic "Internal server error" shown to clients.
func NewServer(err error, msgs ...string) error {
	msg := "Internal server error"
	if len(msgs) > 0 && msgs[0] != "" {
		msg = msgs[0]
	}
	return &Error{err: err, msg: msg, errType: TypeServer, code: CodeInternal}
}

// NewUnavailable reports an endpoint that is switched off.
func NewUnavailable(msg string) error {
	return &Error{msg: msg, errType: TypeUnavailable, code: CodeUnavailable}
}

// NewInvalidInput creates a validation error with msg and the given
// field/message pairs. An odd number of pairs degrades to an invalid-format
// error.
func NewInvalidInput(msg string, kv ...string) error {
	if len(kv)%2 != 0 {
		return NewInvalidFormat()
	}

	fields := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = kv[i+1]
	}
	return NewInvalidFields(msg, fields)
}

// NewInvalidFields creates a validation error carrying a field to message map.
func NewInvalidFields(msg string, fields map[string]string) error {
	e := &Error{msg: msg, errType: TypeValidation, code: CodeInvalidInput}
	if len(fields) > 0 {
		e.fields = fields
	}
	return e
}

// NewInvalidFormat reports a body that could not be decoded.
func NewInvalidFormat(msgs ...string) error {
	msg := "Invalid request body."
	if len(msgs) > 0 && msgs[0] != "" {
		msg = msgs[0]
	}
	return &Error{msg: msg, errType: TypeValidation, code: CodeInvalidFormat}
}

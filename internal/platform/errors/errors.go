// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine facing error class
// values are part of the API envelope; append only
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic is for panics recovered by middleware
	ErrorCodePanic

	// ErrorCodeUnauthorized is for a missing or wrong bearer token
	ErrorCodeUnauthorized

	// ErrorCodeInvalidArgument is for bad parameters outside a request body
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is for request data that fails validation
	ErrorCodeValidation

	// ErrorCodeJSON is for bodies that do not decode
	ErrorCodeJSON

	// ErrorCodeModelUnavailable is for an extraction model that cannot be prepared
	ErrorCodeModelUnavailable

	// ErrorCodeClassification is for a classification call that failed after preparation
	ErrorCodeClassification

	// ErrorCodeMalformedEntity is for an entity whose payload does not match its kind
	ErrorCodeMalformedEntity

	// ErrorCodeCanceled is for work abandoned by the caller
	ErrorCodeCanceled
)

type codeInfo struct {
	name      string
	status    int
	retryable bool
}

var codes = map[ErrorCode]codeInfo{
	ErrorCodeUnknown:          {"unknown", http.StatusInternalServerError, false},
	ErrorCodePanic:            {"panic", http.StatusInternalServerError, false},
	ErrorCodeUnauthorized:     {"unauthorized", http.StatusUnauthorized, false},
	ErrorCodeInvalidArgument:  {"invalid_argument", http.StatusUnprocessableEntity, false},
	ErrorCodeValidation:       {"validation", http.StatusBadRequest, false},
	ErrorCodeJSON:             {"json", http.StatusBadRequest, false},
	ErrorCodeModelUnavailable: {"model_unavailable", http.StatusServiceUnavailable, true},
	ErrorCodeClassification:   {"classification", http.StatusBadGateway, false},
	ErrorCodeMalformedEntity:  {"malformed_entity", http.StatusInternalServerError, false},
	ErrorCodeCanceled:         {"canceled", 499, false}, // client closed request
}

// String returns the code's snake_case name
func (c ErrorCode) String() string {
	if i, ok := codes[c]; ok {
		return i.name
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// HTTPStatusCode turns an ErrorCode into an http status code
func HTTPStatusCode(c ErrorCode) int {
	if i, ok := codes[c]; ok {
		return i.status
	}
	return http.StatusInternalServerError
}

// Error is the structured error type
// msg is developer facing, code is machine facing, field names the offending input
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
}

// Wire is the JSON-serializable form returned by the API
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return e.msg + ": " + e.orig.Error()
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// WireFrom converts any error into a Wire payload; foreign errors are Unknown
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTP bundles status and wire payload for handlers
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatusCode(CodeOf(err)), WireFrom(err)
}

// Retryable reports whether a later attempt may succeed without caller changes
func Retryable(err error) bool {
	return err != nil && codes[CodeOf(err)].retryable
}

// WithField returns a copy of err carrying field; foreign errors come back unchanged
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.field = field
	return &c
}

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// InvalidArgf returns an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// JSONErrf returns a JSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf returns a panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unauthorizedf returns an unauthorized error
func Unauthorizedf(format string, a ...any) error { return Newf(ErrorCodeUnauthorized, format, a...) }

// ModelUnavailablef returns a model unavailable error
func ModelUnavailablef(format string, a ...any) error {
	return Newf(ErrorCodeModelUnavailable, format, a...)
}

// Malformedf returns a malformed entity error
func Malformedf(format string, a ...any) error { return Newf(ErrorCodeMalformedEntity, format, a...) }

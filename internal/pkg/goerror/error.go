package goerror

import (
	"net/http"
)

// Code is the symbolic identifier of an error returned to clients.
type Code string

const (
	// CodeBadRequest indicates the request data did not satisfy its schema.
	CodeBadRequest Code = "BAD_REQUEST"
	// CodeInternal represents an internal or unspecified error.
	CodeInternal Code = "INTERNAL_SERVER_ERROR"
	// CodeNotFound indicates a missing route or resource.
	CodeNotFound Code = "NOT_FOUND"
	// CodeMethodNotAllowed indicates the route exists for another method.
	CodeMethodNotAllowed Code = "METHOD_NOT_ALLOWED"
	// CodeConflict indicates the request clashes with existing state.
	CodeConflict Code = "CONFLICT"
	// CodeUnavailable indicates the endpoint is under maintenance.
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
)

// MsgInternal is the message sent to clients for every internal failure.
const MsgInternal = "Internal server error"

// String returns the string representation of the error code.
func (c Code) String() string {
	return string(c)
}

// StatusCode maps the error code to an HTTP status code.
func (c Code) StatusCode() int {
	switch c {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeConflict:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Body is the JSON shape written for an Error.
type Body struct {
	Code    Code   `json:"code" example:"BAD_REQUEST"`
	Status  int    `json:"status" example:"400"`
	Message string `json:"message" example:"\"email\" is required"`
}

// Error is a client-facing error carrying a symbolic code, an HTTP status and a message.
//
// It is built fresh for every failure and never shared between requests.
type Error struct {
	code   Code
	status int
	msg    string
}

// New creates an Error whose status is derived from code.
func New(code Code, msg string) *Error {
	return &Error{code: code, status: code.StatusCode(), msg: msg}
}

// NewBadRequest creates a 400 error with the given message.
func NewBadRequest(msg string) *Error {
	return New(CodeBadRequest, msg)
}

// NewInternal creates the generic 500 error. The cause is never part of it.
func NewInternal() *Error {
	return New(CodeInternal, MsgInternal)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return http.StatusText(e.status)
}

// Code returns the symbolic error code.
func (e *Error) Code() Code {
	return e.code
}

// StatusCode returns the HTTP status code.
func (e *Error) StatusCode() int {
	return e.status
}

// Msg returns the user-facing error message.
func (e *Error) Msg() string {
	return e.msg
}

// Body returns the JSON payload for the error.
func (e *Error) Body() Body {
	return Body{Code: e.code, Status: e.status, Message: e.Error()}
}

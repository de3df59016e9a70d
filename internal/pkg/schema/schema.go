// Package schema defines the contract between the request validation
// middleware and the engines that actually check data.
//
// A Schema is opaque to its callers: they hand it data and options and get
// back nil or an error. Engines report rule violations as a Failure of kind
// KindInvalid. Everything else (malformed schemas, decoder bugs, panics) is
// an unexpected failure. Callers classify results with Classify instead of
// inspecting engine specific error types.
package schema

import (
	"context"
	"errors"
	"fmt"
)

// Schema validates a value extracted from a request.
type Schema interface {
	Validate(ctx context.Context, data any, opts Options) error
}

// Func adapts an ordinary function to the Schema interface.
type Func func(ctx context.Context, data any, opts Options) error

// Validate calls f(ctx, data, opts).
func (f Func) Validate(ctx context.Context, data any, opts Options) error {
	return f(ctx, data, opts)
}

// Options are passed through to the engine untouched.
type Options struct {
	// AllErrors reports every violation instead of stopping at the first one.
	AllErrors bool
	// AllowUnknown accepts keys the schema does not declare.
	AllowUnknown bool
}

// Kind tags a Failure.
type Kind int

const (
	// KindUnexpected is any failure that is not a schema violation.
	KindUnexpected Kind = iota
	// KindInvalid means the data does not satisfy the schema.
	KindInvalid
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// Failure is the result of a failed validation.
type Failure struct {
	Kind    Kind
	Message string
	Cause   error
}

// Invalid returns a schema violation with a client-safe message.
func Invalid(msg string) *Failure {
	return &Failure{Kind: KindInvalid, Message: msg}
}

// Unexpected wraps an engine malfunction.
func Unexpected(cause error) *Failure {
	f := &Failure{Kind: KindUnexpected, Cause: cause}
	if cause != nil {
		f.Message = cause.Error()
	}
	return f
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Message != "" {
		return f.Message
	}
	return "schema: " + f.Kind.String() + " failure"
}

// Unwrap returns the underlying cause, if any.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// Classify normalizes err into a Failure. Errors that are not a Failure are
// unexpected. A nil err yields nil.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}

	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	return Unexpected(err)
}

// ErrNilSchema is reported when Assert is called without a schema.
var ErrNilSchema = errors.New("schema: nil schema")

// Assert validates data against s. It returns nil or a *Failure. A panic
// raised by the engine is turned into an unexpected failure.
func Assert(ctx context.Context, data any, s Schema, opts Options) (err error) {
	if s == nil {
		return Unexpected(ErrNilSchema)
	}

	defer func() {
		if rvr := recover(); rvr != nil {
			err = Unexpected(fmt.Errorf("schema: engine panic: %v", rvr))
		}
	}()

	if f := Classify(s.Validate(ctx, data, opts)); f != nil {
		return f
	}

	return nil
}

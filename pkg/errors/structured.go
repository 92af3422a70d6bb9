package errors

import (
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/milan604/api-handler/pkg/apperr"
)

// StructuredError is the uniform failure returned by request helpers.
// Details carries the original failure unmodified; it is also the Unwrap target
// so errors.Is/As reach the cause.
type StructuredError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   error     `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}

// Option configures a StructuredError.
type Option func(*StructuredError)

// WithMessage overrides message.
func WithMessage(msg string) Option { return func(se *StructuredError) { se.Message = msg } }

// WithDetails sets the original failure.
func WithDetails(err error) Option { return func(se *StructuredError) { se.Details = err } }

// NewStructuredError constructs a StructuredError with functional options.
func NewStructuredError(code, message string, opts ...Option) *StructuredError {
	se := &StructuredError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	for _, o := range opts {
		o(se)
	}
	return se
}

// FromCode creates a StructuredError from a canonical ErrorCode.
func FromCode(ec *apperr.ErrorCode, opts ...Option) *StructuredError {
	return NewStructuredError(ec.Code(), ec.Message(), opts...)
}

// Network wraps cause as a NETWORK_ERROR. The message is taken from cause,
// falling back to the code's default text.
func Network(cause error) *StructuredError {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return FromCode(apperr.ErrorCodeNetwork,
		WithMessage(apperr.ErrorCodeNetwork.MessageOr(msg)),
		WithDetails(cause),
	)
}

// AsStructured extracts a StructuredError from err.
func AsStructured(err error) (*StructuredError, bool) {
	var se *StructuredError
	if stdErrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// Error implements the error interface.
func (se *StructuredError) Error() string {
	if se == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", se.Code, se.Message)
}

// Unwrap enables errors.Is/As on the original failure.
func (se *StructuredError) Unwrap() error { return se.Details }

// GetCode returns the error code.
func (se *StructuredError) GetCode() string {
	if se == nil {
		return ""
	}
	return se.Code
}

// IsCode reports whether this error has the given code.
func (se *StructuredError) IsCode(code string) bool { return se != nil && se.Code == code }

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! Status: %d", e.StatusCode)
}

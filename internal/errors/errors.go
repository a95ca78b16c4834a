package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError carrying the same code, so the sentinels below work
// with errors.Is regardless of message or wrapping depth.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is or wraps an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the code of the outermost AppError in the chain, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeDegenerateSample = "DEGENERATE_SAMPLE"
	CodeZeroExpectedMass = "ZERO_EXPECTED_MASS"
	CodeInvalidSize      = "INVALID_SIZE"
	CodeMalformedInput   = "MALFORMED_INPUT"
	CodeEmptySample      = "EMPTY_SAMPLE"
	CodeUnknownFamily    = "UNKNOWN_FAMILY"
)

// Sentinels for errors.Is
var (
	ErrDegenerateSample = New(CodeDegenerateSample, "degenerate sample")
	ErrZeroExpectedMass = New(CodeZeroExpectedMass, "zero expected mass")
	ErrInvalidSize      = New(CodeInvalidSize, "invalid size")
	ErrMalformedInput   = New(CodeMalformedInput, "malformed input")
	ErrEmptySample      = New(CodeEmptySample, "empty sample")
	ErrUnknownFamily    = New(CodeUnknownFamily, "unknown distribution family")
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func DegenerateSample(message string) *AppError {
	return New(CodeDegenerateSample, message)
}

func ZeroExpectedMass(message string) *AppError {
	return New(CodeZeroExpectedMass, message)
}

func InvalidSize(message string) *AppError {
	return New(CodeInvalidSize, message)
}

func MalformedInput(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeMalformedInput,
		Message: message,
		Cause:   cause,
	}
}

func EmptySample(message string) *AppError {
	return New(CodeEmptySample, message)
}

func UnknownFamily(name string) *AppError {
	return New(CodeUnknownFamily, fmt.Sprintf("unknown distribution %q (expected uniform or normal)", name))
}

// HTTPStatus maps an error to the status code the HTTP adapters respond with
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeInvalidInput, CodeInvalidSize, CodeMalformedInput, CodeEmptySample, CodeUnknownFamily:
		return http.StatusBadRequest
	case CodeDegenerateSample, CodeZeroExpectedMass:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

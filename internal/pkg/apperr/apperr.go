package apperr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeTooManyRequests   = "TOO_MANY_REQUESTS"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeRenderFailed      = "RENDER_FAILED"
	CodeMailFailed        = "MAIL_DISPATCH_FAILED"
	CodeUnknownFiberError = "UNKNOWN_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrTooManyRequests is returned by the intake limiter.
	ErrTooManyRequests = New(fiber.StatusTooManyRequests, CodeTooManyRequests, "too many submissions from this client, please try again shortly")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")

	// ErrRenderFailed is returned when a submission could not be turned into a PDF. No email is sent.
	ErrRenderFailed = New(fiber.StatusInternalServerError, CodeRenderFailed, "failed to render the submission")

	// ErrMailFailed is returned when the SMTP relay did not accept the rendered submission.
	ErrMailFailed = New(fiber.StatusBadGateway, CodeMailFailed, "failed to email the submission")
)

type Extras map[string]any

// Error is an immutable API error. Every modifier returns a copy.
type Error struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Extras     *Extras

	cause error
}

func New(statusCode int, errorCode string, message string) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e Error) Msg(format string, parts ...any) *Error {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e Error) WithExtras(extras Extras) *Error {
	e.Extras = &extras
	return &e
}

// WithCause attaches the underlying error for logging. It is never serialized.
func (e Error) WithCause(err error) *Error {
	e.cause = err
	return &e
}

func NewInvalidViolations(violations any) *Error {
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.ErrorCode, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches errors with the same ErrorCode so callers can test against the sentinels above
// after Msg or WithCause produced a copy.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.ErrorCode == e.ErrorCode
}

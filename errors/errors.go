package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds. Every failure leaving the client wraps exactly one of them.
var (
	ErrValidation = fmt.Errorf("validation error")
	ErrAuth       = fmt.Errorf("authentication error")
	ErrNotFound   = fmt.Errorf("not found")
	ErrTransport  = fmt.Errorf("transport error")
)

var (
	ErrEmptyMessage        = fmt.Errorf("%w: message is empty", ErrValidation)
	ErrNoActiveThread      = fmt.Errorf("%w: no active conversation", ErrValidation)
	ErrPasswordMismatch    = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrDuplicateSend       = fmt.Errorf("%w: identical message already being sent", ErrValidation)
	ErrParticipantNotFound = fmt.Errorf("%w: participant not found", ErrNotFound)
	ErrMissingRefreshToken = fmt.Errorf("%w: no refresh token", ErrAuth)
	ErrNoCredentials       = fmt.Errorf("%w: no stored credentials", ErrAuth)
)

var ErrWorkerPanic = fmt.Errorf("worker panicked")

// InputError is a validation failure carrying a message meant for the user.
type InputError struct {
	Message string
}

func Invalid(message string) *InputError {
	return &InputError{Message: message}
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Unwrap() error { return ErrValidation }

// RemoteError is a failure reported by, or on the way to, the remote service.
// Message is safe to show to a user; Cause is only for logs.
type RemoteError struct {
	Kind    error
	Status  int
	Message string
	Cause   error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%v (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *RemoteError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// FromStatus classifies an HTTP status into a RemoteError.
func FromStatus(status int, message string) *RemoteError {
	kind := ErrTransport
	switch status {
	case http.StatusUnauthorized:
		kind = ErrAuth
	case http.StatusNotFound:
		kind = ErrNotFound
	}
	return &RemoteError{Kind: kind, Status: status, Message: message}
}

// Transport wraps a network or decoding failure.
func Transport(cause error) *RemoteError {
	return &RemoteError{Kind: ErrTransport, Message: cause.Error(), Cause: cause}
}

// IsUnauthorized reports whether err is a 401 coming back from the service.
func IsUnauthorized(err error) bool {
	var re *RemoteError
	return stderrors.As(err, &re) && re.Status == http.StatusUnauthorized
}

// UserMessage returns the service-provided message carried by err, or fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var re *RemoteError
	if stderrors.As(err, &re) && re.Status != 0 && re.Message != "" {
		return re.Message
	}
	var input *InputError
	if stderrors.As(err, &input) {
		return input.Message
	}
	if stderrors.Is(err, ErrValidation) {
		return strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
	}
	return fallback
}

// Failure is what a user-facing operation returns: a displayable message
// on top of the underlying error.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// NewFailure wraps err with the service message it carries, or fallback.
func NewFailure(err error, fallback string) *Failure {
	return &Failure{Message: UserMessage(err, fallback), Err: err}
}

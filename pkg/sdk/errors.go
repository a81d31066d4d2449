package sdk

import (
	"errors"
	"fmt"
	"net/http"
)

// AuthErrorKind classifies session failures.
type AuthErrorKind int

const (
	// InvalidCredentials means the backend rejected the request.
	InvalidCredentials AuthErrorKind = iota + 1
	// MalformedResponse means the backend returned success without token/user.
	MalformedResponse
	// Unreachable means the transport failed before a response arrived.
	Unreachable
	// Unauthenticated means the operation needs a session that is not present.
	Unauthenticated
)

func (k AuthErrorKind) String() string {
	switch k {
	case InvalidCredentials:
		return "invalid_credentials"
	case MalformedResponse:
		return "malformed_response"
	case Unreachable:
		return "unreachable"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is against an *AuthError of the matching kind.
var (
	ErrInvalidCredentials = &AuthError{Kind: InvalidCredentials}
	ErrMalformedResponse  = &AuthError{Kind: MalformedResponse}
	ErrUnreachable        = &AuthError{Kind: Unreachable}
	ErrUnauthenticated    = &AuthError{Kind: Unauthenticated}
)

// AuthError is the typed result of a failed login, register or session call.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil && e.Err.Error() != msg {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AuthError) Unwrap() error { return e.Err }

// Is matches any *AuthError with the same Kind.
func (e *AuthError) Is(target error) bool {
	var other *AuthError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// UserMessage returns the text shown inline on the login form.
func (e *AuthError) UserMessage() string {
	switch e.Kind {
	case InvalidCredentials:
		if e.Message != "" {
			return e.Message
		}
		return "Invalid login credentials"
	case MalformedResponse:
		return "Something went wrong signing in. Please try again."
	case Unreachable:
		return "Unable to connect to the server. Please check your connection."
	case Unauthenticated:
		return "Your session has ended. Please sign in again."
	default:
		return "Unexpected error"
	}
}

// UserMessage extracts the inline text for err, falling back to err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.UserMessage()
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// APIError is a non-2xx response from a resource endpoint.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, http.StatusText(e.Status))
}

// Is lets callers test a 401 response with errors.Is(err, ErrUnauthenticated).
func (e *APIError) Is(target error) bool {
	return e.Status == http.StatusUnauthorized && target == ErrUnauthenticated
}

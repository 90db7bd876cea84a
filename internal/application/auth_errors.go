package application

import (
	"errors"

	"github.com/ymatsuda/coffee-journal/internal/infrastructure/postgres"
)

// AuthCode tags every authentication failure the pages can show. Handlers map
// tags to fixed user-facing messages; nothing downstream ever matches on raw
// provider error text.
type AuthCode string

const (
	CodeInvalidCredentials AuthCode = "invalid_credentials"
	CodeEmailUnconfirmed   AuthCode = "email_unconfirmed"
	CodeDuplicateEmail     AuthCode = "duplicate_email"
	CodeWeakPassword       AuthCode = "weak_password"
	CodeOther              AuthCode = "other"
)

// AuthError is the tagged enumeration of identity-provider failures.
type AuthError struct {
	Code    AuthCode
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

var (
	ErrInvalidCredentials = &AuthError{Code: CodeInvalidCredentials, Message: "invalid credentials"}
	ErrEmailUnconfirmed   = &AuthError{Code: CodeEmailUnconfirmed, Message: "email not confirmed"}
	ErrDuplicateEmail     = &AuthError{Code: CodeDuplicateEmail, Message: "email already registered"}
	ErrWeakPassword       = &AuthError{Code: CodeWeakPassword, Message: "password too weak"}
)

// CodeOf extracts the tag from err, defaulting to CodeOther.
func CodeOf(err error) AuthCode {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeOther
}

// classifyAuthErr maps store-boundary errors onto the enumeration once, at
// the boundary, keeping presentation decoupled from the provider.
func classifyAuthErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, postgres.ErrDuplicate) {
		return ErrDuplicateEmail
	}
	return &AuthError{Code: CodeOther, Message: err.Error()}
}

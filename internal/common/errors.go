// Package common contains shared constants and sentinel errors used across
// otpgate components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// service-level errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// validation errors (client input, checked before any network call)
	ErrUsernameRequired = errors.New("name is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrInvalidOtp       = errors.New("please enter a valid 6-digit code")

	// flow errors
	ErrNoPendingVerification = errors.New("no pending verification")
)

package cli

import (
	"regexp"

	"github.com/avoronin/otpgate/internal/common"
)

// Local validation mirrors the form constraints: required fields, email
// pattern, minimum password length, fixed-length numeric OTP. Anything
// failing here never reaches the server.

var (
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	otpRe   = regexp.MustCompile(`^\d{6}$`)
)

const minPasswordLen = 6

func validateUsername(username string) error {
	if username == "" {
		return common.ErrUsernameRequired
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return common.ErrEmailRequired
	}
	if !emailRe.MatchString(email) {
		return common.ErrInvalidEmail
	}
	return nil
}

func validatePassword(password []byte) error {
	if len(password) == 0 {
		return common.ErrPasswordRequired
	}
	if len(password) < minPasswordLen {
		return common.ErrPasswordTooShort
	}
	return nil
}

func validateOtp(code string) error {
	if !otpRe.MatchString(code) {
		return common.ErrInvalidOtp
	}
	return nil
}

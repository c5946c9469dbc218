package cli

import (
	"bufio"
	"io"
	"strings"
)

// otpLength is the fixed length of the emailed verification code.
const otpLength = 6

// SanitizeOtp strips non-digits from raw input and truncates it to six
// characters, independent of later validation. Mirrors what the form does
// as the user types, so "12a3456xyz" becomes "123456".
func SanitizeOtp(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == otpLength {
			break
		}
	}
	return b.String()
}

// abandonWord lets the user leave an OTP screen back to the credential step.
const abandonWord = "back"

// GetOtp prompts for the verification code and returns the sanitized value.
// abandoned is true when the user typed "back" instead of a code.
func GetOtp(reader *bufio.Reader, w io.Writer) (code string, abandoned bool, err error) {
	line, err := GetSimpleText(reader, "Enter the 6-digit code (or 'back' to cancel)", w)
	if err != nil {
		return "", false, err
	}
	if strings.EqualFold(line, abandonWord) {
		return "", true, nil
	}
	return SanitizeOtp(line), false, nil
}

package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeOtp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"digits pass through", "123456", "123456"},
		{"letters stripped", "12a3456xyz", "123456"},
		{"truncated to six", "1234567890", "123456"},
		{"spaces and dashes stripped", " 12-34 56 ", "123456"},
		{"short input kept short", "12x3", "123"},
		{"empty", "", ""},
		{"no digits at all", "abcdef", ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, SanitizeOtp(tc.input))
		})
	}
}

func TestGetOtp_Sanitizes(t *testing.T) {
	var out bytes.Buffer
	code, abandoned, err := GetOtp(rdr("12a3456\n"), &out)
	require.NoError(t, err)
	require.False(t, abandoned)
	require.Equal(t, "123456", code)
}

func TestGetOtp_Back(t *testing.T) {
	var out bytes.Buffer
	code, abandoned, err := GetOtp(rdr("BACK\n"), &out)
	require.NoError(t, err)
	require.True(t, abandoned)
	require.Empty(t, code)
}

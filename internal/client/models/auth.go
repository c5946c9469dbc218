// Package models defines the client-side data model for the auth flow:
// the session, the user profile snapshot, and the transient
// pending-verification marker that bridges the credential and OTP steps.
package models

// UserProfile is an immutable snapshot of the account as returned by the
// remote service at verification time.
type UserProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the client's belief about current authentication status.
// Token and User start empty, are hydrated from persisted storage at
// startup, filled on successful OTP verification, and cleared on logout.
type Session struct {
	Token string       `json:"token,omitempty"`
	User  *UserProfile `json:"user,omitempty"`
}

// IsAuthenticated reports whether the session carries a user.
// Navigation guards key off the user, not the token, matching the
// behavior of every observed client of this service.
func (s Session) IsAuthenticated() bool {
	return s.User != nil
}

// Flow values recorded in the pending-verification marker, so a resumed
// client knows which OTP step the marker belongs to.
const (
	FlowRegister = "register"
	FlowLogin    = "login"
)

// PendingVerification marks a user who submitted primary credentials and
// has not yet submitted the emailed OTP. It survives a client restart so
// an interrupted flow can resume at the OTP step.
type PendingVerification struct {
	Email string `json:"email"`
	Flow  string `json:"flow,omitempty"`
}

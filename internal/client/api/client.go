package api

import (
	"context"

	"github.com/avoronin/otpgate/internal/client/models"
)

// Tag labels cached data for invalidation. Mutations declare the tags they
// invalidate; a successful call drops every cache entry carrying one of them.
type Tag string

// TagAuth covers everything derived from the authenticated identity.
const TagAuth Tag = "Auth"

// RegisterRequest starts the registration flow. The server answers by
// emailing an OTP to the given address.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is step one of the login flow; success means an OTP was sent.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOtpRequest is step two of either flow.
type VerifyOtpRequest struct {
	Email   string `json:"email"`
	OtpCode string `json:"otpCode"`
}

// ResetPasswordRequest completes the forgot-password flow.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OtpCode     string `json:"otpCode"`
	NewPassword string `json:"newPassword"`
}

// OtpSent confirms that a code went out, echoing the target email.
type OtpSent struct {
	Email string `json:"email"`
}

// LoginVerify is the flat token+profile payload of a successful login-OTP
// verification.
type LoginVerify struct {
	Token    string `json:"token"`
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Profile extracts the user snapshot from the flat payload.
func (v *LoginVerify) Profile() *models.UserProfile {
	return &models.UserProfile{ID: v.ID, Username: v.Username, Email: v.Email}
}

// Client is the typed contract for the six auth operations plus logout.
// All methods honor context cancellation; every call is a POST under
// <base-url>/api/auth.
type Client interface {
	Register(ctx context.Context, req RegisterRequest) (*OtpSent, error)
	VerifyRegisterOtp(ctx context.Context, req VerifyOtpRequest) (*models.UserProfile, error)
	Login(ctx context.Context, req LoginRequest) (*OtpSent, error)
	VerifyOtp(ctx context.Context, req VerifyOtpRequest) (*LoginVerify, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	Logout(ctx context.Context) error
	Close() error
}

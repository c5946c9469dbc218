package cli

import (
	"context"
	"os"

	"github.com/avoronin/otpgate/internal/client/api"
	"github.com/avoronin/otpgate/internal/client/models"
	"github.com/avoronin/otpgate/internal/client/nav"
	"github.com/avoronin/otpgate/internal/common"
)

// getSimpleText, getPassword and getOtp are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getOtp = GetOtp

// Register walks the first registration step: username, email and password.
// On success the server has emailed a verification code, the pending marker
// is persisted, and the flow continues into the verification step.
func (a *App) Register(ctx context.Context) error {
	a.router.Navigate(nav.RouteRegister)

	username, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}
	if err := validateUsername(username); err != nil {
		printlnFn(err.Error())
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		printlnFn(err.Error())
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	if err := validatePassword(password); err != nil {
		printlnFn(err.Error())
		return err
	}

	sent, err := a.api.Register(ctx, api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: string(password),
	})
	if err != nil {
		printlnFn(errMessage(err))
		return err
	}

	// Prefer the address the server echoes back; fall back to what the
	// user typed when the response omits it.
	target := email
	if sent != nil && sent.Email != "" {
		target = sent.Email
	}
	if err := a.store.SetPendingVerification(ctx, models.PendingVerification{
		Email: target,
		Flow:  models.FlowRegister,
	}); err != nil {
		a.log.Warn(ctx, "could not persist pending verification", "err", err)
	}

	printlnFn("Verification code sent to " + target)
	a.router.Navigate(nav.RouteVerifyRegisterOtp)
	return a.verifyRegisterOtp(ctx)
}

// verifyRegisterOtp is the second registration step. It requires a pending
// marker; without one the user is bounced back to the registration screen.
// Verification activates the account but does not start a session, the user
// still has to log in.
func (a *App) verifyRegisterOtp(ctx context.Context) error {
	pending, err := a.store.PendingVerification(ctx)
	if err != nil {
		return err
	}
	if pending == nil {
		printlnFn("No registration in progress. Use 'register' first.")
		a.router.Replace(nav.RouteRegister)
		return common.ErrNoPendingVerification
	}

	code, abandoned, err := getOtp(a.reader, os.Stdout)
	if err != nil {
		return err
	}
	if abandoned {
		_ = a.store.ClearPendingVerification(ctx)
		printlnFn("Cancelled.")
		a.router.Back()
		return nil
	}
	if err := validateOtp(code); err != nil {
		printlnFn(err.Error())
		return err
	}

	if _, err := a.api.VerifyRegisterOtp(ctx, api.VerifyOtpRequest{
		Email:   pending.Email,
		OtpCode: code,
	}); err != nil {
		printlnFn(errMessage(err))
		return err
	}

	_ = a.store.ClearPendingVerification(ctx)
	printlnFn("Account verified. Please log in.")
	a.router.Navigate(nav.RouteLogin)
	return nil
}

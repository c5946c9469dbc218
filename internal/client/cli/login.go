package cli

import (
	"context"
	"os"

	"github.com/avoronin/otpgate/internal/client/api"
	"github.com/avoronin/otpgate/internal/client/models"
	"github.com/avoronin/otpgate/internal/client/nav"
	"github.com/avoronin/otpgate/internal/client/session"
	"github.com/avoronin/otpgate/internal/common"
)

// Login walks the first login step: email and password. Correct credentials
// do not authenticate yet, they only trigger the emailed code; the flow
// continues into the verification step.
func (a *App) Login(ctx context.Context) error {
	a.router.Navigate(nav.RouteLogin)

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

	sent, err := a.api.Login(ctx, api.LoginRequest{Email: email, Password: string(password)})
	if err != nil {
		printlnFn(errMessage(err))
		return err
	}

	target := email
	if sent != nil && sent.Email != "" {
		target = sent.Email
	}
	if err := a.store.SetPendingVerification(ctx, models.PendingVerification{
		Email: target,
		Flow:  models.FlowLogin,
	}); err != nil {
		a.log.Warn(ctx, "could not persist pending verification", "err", err)
	}

	printlnFn("Verification code sent to " + target)
	a.router.Navigate(nav.RouteVerifyOtp)
	return a.verifyLoginOtp(ctx)
}

// verifyLoginOtp is the second login step. A correct code yields the token
// and the user profile; the session is updated before navigating home so the
// route guard sees an authenticated user.
func (a *App) verifyLoginOtp(ctx context.Context) error {
	pending, err := a.store.PendingVerification(ctx)
	if err != nil {
		return err
	}
	if pending == nil {
		printlnFn("No login in progress. Use 'login' first.")
		a.router.Replace(nav.RouteLogin)
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

	verified, err := a.api.VerifyOtp(ctx, api.VerifyOtpRequest{
		Email:   pending.Email,
		OtpCode: code,
	})
	if err != nil {
		printlnFn(errMessage(err))
		return err
	}
	// A success envelope without a data payload carries neither token nor
	// user. Treat it like any other remote failure instead of trusting it.
	if verified == nil {
		printlnFn("Unexpected server response. Please try again.")
		return common.ErrorInternal
	}

	_ = a.store.ClearPendingVerification(ctx)
	if err := a.session.SetUser(ctx, session.Update{
		Token: &verified.Token,
		User:  verified.Profile(),
	}); err != nil {
		a.log.Warn(ctx, "could not persist session", "err", err)
	}
	a.router.Navigate(nav.RouteHome)
	printlnFn("Welcome, " + verified.Username + "!")
	return nil
}

// Logout ends the session on both sides. The remote call is best effort: the
// local session is cleared even when the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		a.log.Warn(ctx, "remote logout failed, clearing local session anyway", "err", err)
	}
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	a.router.Replace(nav.RouteLogin)
	return nil
}

package cli

import (
	"context"
	"os"

	"github.com/avoronin/otpgate/internal/client/api"
	"github.com/avoronin/otpgate/internal/client/nav"
	"github.com/avoronin/otpgate/internal/common"
)

// ForgotPassword requests a password-reset code for an email address and
// continues into the reset step with that address prefilled.
func (a *App) ForgotPassword(ctx context.Context) error {
	a.router.Navigate(nav.RouteForgotPassword)

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.api.ForgotPassword(ctx, email); err != nil {
		printlnFn(errMessage(err))
		return err
	}

	printlnFn("Reset code sent to " + email)
	a.router.Navigate(nav.RouteResetPassword)
	return a.resetPassword(ctx, email)
}

// ResetPassword completes the flow on its own, for users who already hold a
// code from an earlier 'forgot' request.
func (a *App) ResetPassword(ctx context.Context) error {
	a.router.Navigate(nav.RouteResetPassword)
	return a.resetPassword(ctx, "")
}

func (a *App) resetPassword(ctx context.Context, email string) error {
	if email == "" {
		var err error
		email, err = getSimpleText(a.reader, "Enter email", os.Stdout)
		if err != nil {
			return err
		}
		if err := validateEmail(email); err != nil {
			printlnFn(err.Error())
			return err
		}
	}

	code, abandoned, err := getOtp(a.reader, os.Stdout)
	if err != nil {
		return err
	}
	if abandoned {
		printlnFn("Cancelled.")
		a.router.Back()
		return nil
	}
	if err := validateOtp(code); err != nil {
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

	if err := a.api.ResetPassword(ctx, api.ResetPasswordRequest{
		Email:       email,
		OtpCode:     code,
		NewPassword: string(password),
	}); err != nil {
		printlnFn(errMessage(err))
		return err
	}

	printlnFn("Password updated. Please log in.")
	a.router.Navigate(nav.RouteLogin)
	return nil
}

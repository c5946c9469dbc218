package cli

import (
	"context"
	"fmt"

	"github.com/avoronin/otpgate/internal/client/models"
	"github.com/avoronin/otpgate/internal/client/nav"
)

// Home navigates to the protected home screen. Anonymous users are redirected
// to the login screen by the route guard.
func (a *App) Home(ctx context.Context) error {
	if route := a.router.Navigate(nav.RouteHome); route != nav.RouteHome {
		printlnFn("Please log in first.")
		return nil
	}
	u := a.session.User()
	printlnFn(fmt.Sprintf("Home. Logged in as %s <%s>", u.Username, u.Email))
	return nil
}

// WhoAmI prints the current identity without touching navigation.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s> (id %s)", u.Username, u.Email, u.ID))
	return nil
}

// VerifyPending resumes the OTP step the user is on, or, after a restart,
// the one recorded in the durable pending marker. The marker's flow field
// decides which verification screen the resumed session lands on.
func (a *App) VerifyPending(ctx context.Context) error {
	switch a.router.Current() {
	case nav.RouteVerifyRegisterOtp:
		return a.verifyRegisterOtp(ctx)
	case nav.RouteVerifyOtp:
		return a.verifyLoginOtp(ctx)
	}

	pending, err := a.store.PendingVerification(ctx)
	if err != nil {
		return err
	}
	switch {
	case pending == nil:
		printlnFn("Nothing to verify. Use 'register' or 'login' first.")
		return nil
	case pending.Flow == models.FlowRegister:
		a.router.Navigate(nav.RouteVerifyRegisterOtp)
		return a.verifyRegisterOtp(ctx)
	default:
		a.router.Navigate(nav.RouteVerifyOtp)
		return a.verifyLoginOtp(ctx)
	}
}

// Back pops one entry off the navigation history.
func (a *App) Back(ctx context.Context) error {
	printlnFn("Now at " + string(a.router.Back()))
	return nil
}

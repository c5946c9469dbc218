package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuard_AnonymousRedirectedToLogin(t *testing.T) {
	g := NewGuard(func() bool { return false })

	route, redirected := g.Resolve(RouteHome)
	require.True(t, redirected)
	require.Equal(t, RouteLogin, route)
}

func TestGuard_AuthenticatedPassesThrough(t *testing.T) {
	g := NewGuard(func() bool { return true })

	route, redirected := g.Resolve(RouteHome)
	require.False(t, redirected)
	require.Equal(t, RouteHome, route)
}

func TestGuard_PublicRoutesNeverRedirect(t *testing.T) {
	g := NewGuard(func() bool { return false })

	for _, r := range []Route{
		RouteRegister, RouteVerifyRegisterOtp, RouteLogin,
		RouteVerifyOtp, RouteForgotPassword, RouteResetPassword,
	} {
		route, redirected := g.Resolve(r)
		require.False(t, redirected, "route %s", r)
		require.Equal(t, r, route)
	}
}

func TestRouter_RedirectReplacesHistory(t *testing.T) {
	authed := false
	r := NewRouter(NewGuard(func() bool { return authed }), RouteLogin)

	got := r.Navigate(RouteHome)
	require.Equal(t, RouteLogin, got)
	require.Equal(t, 1, r.Depth(), "redirect must replace, not push")

	// going back must not loop into the guarded view
	require.Equal(t, RouteLogin, r.Back())
}

func TestRouter_StateChangeUnlocksProtectedView(t *testing.T) {
	authed := false
	r := NewRouter(NewGuard(func() bool { return authed }), RouteLogin)

	require.Equal(t, RouteLogin, r.Navigate(RouteHome))

	authed = true
	require.Equal(t, RouteHome, r.Navigate(RouteHome))
	require.Equal(t, RouteHome, r.Current())
}

func TestRouter_PushAndBack(t *testing.T) {
	r := NewRouter(NewGuard(func() bool { return true }), RouteHome)

	r.Navigate(RouteForgotPassword)
	r.Navigate(RouteResetPassword)
	require.Equal(t, RouteResetPassword, r.Current())
	require.Equal(t, 3, r.Depth())

	require.Equal(t, RouteForgotPassword, r.Back())
	require.Equal(t, RouteHome, r.Back())
	require.Equal(t, RouteHome, r.Back(), "root entry stays put")
}

func TestRouter_InitialRouteIsGuarded(t *testing.T) {
	r := NewRouter(NewGuard(func() bool { return false }), RouteHome)
	require.Equal(t, RouteLogin, r.Current())
}

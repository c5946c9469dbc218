// Package nav models client-side navigation: the route table, a history
// stack, and the guard deciding whether the current session may reach a
// protected view.
package nav

// Route identifies a client view.
type Route string

const (
	RouteHome              Route = "/"
	RouteRegister          Route = "/register"
	RouteVerifyRegisterOtp Route = "/verify-register-otp"
	RouteLogin             Route = "/login"
	RouteVerifyOtp         Route = "/verify-otp"
	RouteForgotPassword    Route = "/forgot-password"
	RouteResetPassword     Route = "/reset-password"
)

// protected lists the views reachable only with an authenticated session.
var protected = map[Route]bool{
	RouteHome: true,
}

// IsProtected reports whether r requires an authenticated session.
func IsProtected(r Route) bool {
	return protected[r]
}

// Guard decides per navigation whether the session state permits access.
// It trusts locally cached state; no server round-trip validates the token.
type Guard struct {
	authed func() bool
}

// NewGuard wires the guard to a session predicate (typically
// session.Store.IsAuthenticated).
func NewGuard(authed func() bool) *Guard {
	return &Guard{authed: authed}
}

// Resolve maps an intended target to the route actually rendered. A
// protected target while anonymous resolves to the login view; redirected
// reports whether that happened, in which case the caller must replace
// history instead of pushing (no back-navigation loop).
func (g *Guard) Resolve(target Route) (route Route, redirected bool) {
	if IsProtected(target) && !g.authed() {
		return RouteLogin, true
	}
	return target, false
}

// Router is a history stack with guard-aware navigation.
type Router struct {
	guard   *Guard
	history []Route
}

// NewRouter starts at initial (guard-resolved).
func NewRouter(guard *Guard, initial Route) *Router {
	r := &Router{guard: guard}
	resolved, _ := guard.Resolve(initial)
	r.history = []Route{resolved}
	return r
}

// Current returns the route on top of the history stack.
func (r *Router) Current() Route {
	return r.history[len(r.history)-1]
}

// Navigate resolves target through the guard, then pushes it, or replaces
// the current entry when the guard redirected.
func (r *Router) Navigate(target Route) Route {
	resolved, redirected := r.guard.Resolve(target)
	if redirected {
		r.Replace(resolved)
	} else {
		r.Push(resolved)
	}
	return resolved
}

// Push appends a history entry.
func (r *Router) Push(route Route) {
	r.history = append(r.history, route)
}

// Replace swaps the current entry, keeping history depth unchanged.
func (r *Router) Replace(route Route) {
	r.history[len(r.history)-1] = route
}

// Back pops the current entry and returns the revealed route. At the root
// it stays put.
func (r *Router) Back() Route {
	if len(r.history) > 1 {
		r.history = r.history[:len(r.history)-1]
	}
	return r.Current()
}

// Depth returns the number of history entries.
func (r *Router) Depth() int {
	return len(r.history)
}

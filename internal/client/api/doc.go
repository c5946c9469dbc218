// Package api is the typed contract for the remote auth service: seven POST
// operations under /api/auth, the response envelope they all share, and a
// tag-based invalidation cache mirroring the mutation/tag model the service's
// browser clients use.
//
// The package shapes requests and responses and tags cache invalidation; it
// carries no business logic. Failures surface either as *APIError (the
// service answered with a failure envelope) or as ErrUnavailable (transport
// failure); rendering them is the calling screen's job.
package api

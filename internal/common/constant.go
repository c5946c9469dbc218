package common

// AuthorizationHeader carries the bearer credential on outbound requests
// whenever a token is present in durable storage.
const AuthorizationHeader = "Authorization"

// BearerPrefix is prepended to the token in the Authorization header.
const BearerPrefix = "Bearer "

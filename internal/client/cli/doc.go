// Package cli provides the interactive otpgate command-line client.
//
// It wires configuration, durable storage, the remote auth client, the
// session store, and an interactive REPL that walks the two-step
// register/login flows and the password-reset flow.
//
// Key features:
//   - Register -> email OTP -> back to login
//   - Login -> email OTP -> authenticated session
//   - Forgot/reset password
//   - Session survives restarts via the persistence layer
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

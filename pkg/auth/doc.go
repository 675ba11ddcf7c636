// Package auth implements credential handling and the request
// authentication gate for the bookden service.
//
// It provides password hashing and verification (bcrypt), signed
// bearer tokens (HS256 JWT with a process-wide secret), the HTTP
// middleware that verifies tokens and binds a Principal to the request
// context, and the ownership check used by mutating handlers.
package auth

package domain

import "errors"

// Credential and registration failures.
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrPasswordTooLong        = errors.New("password exceeds 72 bytes")
	ErrBlankName              = errors.New("name must not be blank")
)

// Request-level authorization failures.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access forbidden")
)

// Token verification failures. Each one means the caller is unauthenticated.
var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrMalformedToken   = errors.New("token malformed")
)

// ErrMissingSigningSecret is a startup error, never a per-request one.
var ErrMissingSigningSecret = errors.New("jwt signing secret is not configured")

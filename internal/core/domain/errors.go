package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested identity or resource was not found
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a uniqueness constraint (email, phone, document,
	// product name within a store) is already taken
	ErrDuplicate = errors.New("already registered")

	// ErrInvalidInput indicates the input is malformed or incomplete
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired indicates the token is past its expiry
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the token signature does not verify
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenMalformed indicates the token is structurally broken
	ErrTokenMalformed = errors.New("token malformed")

	// ErrWrongAccountKind indicates a user token on a store-only operation or
	// vice versa
	ErrWrongAccountKind = errors.New("wrong account kind")

	// ErrForbidden indicates the authenticated identity does not own the
	// resource it is trying to act on
	ErrForbidden = errors.New("forbidden")

	// ErrNoChange indicates an edit was requested with no actual field
	// differences
	ErrNoChange = errors.New("no change requested")

	// ErrUpstream indicates a payment-gateway or persistence failure that is
	// not locally recoverable
	ErrUpstream = errors.New("upstream failure")
)

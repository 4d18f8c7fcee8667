package service

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrMisconfigured = errors.New("auth config invalid")
	ErrNotFound      = errors.New("not found")

	// Token authentication failures, in the order they are checked.
	ErrMissingCredential   = errors.New("authentication credentials were not provided")
	ErrMalformedCredential = errors.New("invalid token header")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token is expired")

	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
)

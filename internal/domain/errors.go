package domain

import "errors"

var (
	ErrInvalidDateFormat    = errors.New("invalid date format")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidPrice         = errors.New("invalid price")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrPasswordMismatch     = errors.New("password confirmation does not match")
	ErrSecretNotFound       = errors.New("secret not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

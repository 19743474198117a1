package domain

import "time"

type SessionState string

const (
	SessionAnonymous     SessionState = "anonymous"
	SessionAuthenticated SessionState = "authenticated"
)

// SessionMetadata is the non-secret part of a signed-in session. The bearer
// token itself lives in the secret store.
type SessionMetadata struct {
	Email      string
	Subject    string
	ServerURL  string
	SignedInAt time.Time
	ExpiresAt  time.Time
}

func (m SessionMetadata) Expired(now time.Time) bool {
	if m.ExpiresAt.IsZero() {
		return false
	}
	return !m.ExpiresAt.After(now)
}

type Credentials struct {
	Email    string
	Password string
}

type Registration struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

func (r Registration) Validate() error {
	if r.Password != r.PasswordConfirmation {
		return ErrPasswordMismatch
	}
	return nil
}

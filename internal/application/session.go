package application

import (
	"context"
	"sync"

	"github.com/bnema/subs-cli/internal/domain"
	"github.com/bnema/subs-cli/internal/ports"
)

var _ ports.TokenSource = (*Session)(nil)

// Session holds the in-memory authentication state for one process. It starts
// anonymous and is handed to the API client as its token source.
type Session struct {
	mu       sync.RWMutex
	state    domain.SessionState
	token    string
	metadata domain.SessionMetadata
}

func NewSession() *Session {
	return &Session{state: domain.SessionAnonymous}
}

func (s *Session) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != domain.SessionAuthenticated || s.token == "" {
		return "", domain.ErrNotAuthenticated
	}
	return s.token, nil
}

func (s *Session) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

func (s *Session) Metadata() domain.SessionMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.metadata
}

func (s *Session) authenticate(token string, metadata domain.SessionMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.SessionAuthenticated
	s.token = token
	s.metadata = metadata
}

func (s *Session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.SessionAnonymous
	s.token = ""
	s.metadata = domain.SessionMetadata{}
}

package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/subs-cli/internal/domain"
	"github.com/bnema/subs-cli/internal/ports"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// SessionTokenKey is the secret-store key of the bearer token.
const SessionTokenKey = "subs/session/token"

type SessionService struct {
	session   *Session
	auth      ports.AuthGateway
	store     ports.SecretStore
	repo      ports.SessionRepository
	clock     ports.Clock
	serverURL string
	logger    *zap.Logger
}

func NewSessionService(
	session *Session,
	auth ports.AuthGateway,
	store ports.SecretStore,
	repo ports.SessionRepository,
	clock ports.Clock,
	serverURL string,
	logger *zap.Logger,
) *SessionService {
	if session == nil {
		session = NewSession()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SessionService{
		session:   session,
		auth:      auth,
		store:     store,
		repo:      repo,
		clock:     clock,
		serverURL: serverURL,
		logger:    logger,
	}
}

// Restore loads a previously stored token. A missing token leaves the session
// anonymous; an expired one is discarded.
func (s *SessionService) Restore(ctx context.Context) error {
	token, err := s.store.Get(ctx, SessionTokenKey)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			s.session.reset()
			return nil
		}
		return fmt.Errorf("load session token: %w", err)
	}

	metadata, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("load session metadata: %w", err)
		}
		metadata = domain.SessionMetadata{ServerURL: s.serverURL}
		applyTokenClaims(&metadata, token)
	}

	if metadata.Expired(s.clock.Now()) {
		s.logger.Info("discarding expired session",
			zap.String("email", metadata.Email),
			zap.Time("expires_at", metadata.ExpiresAt),
		)
		s.session.reset()
		return s.clearLocal(ctx)
	}

	s.session.authenticate(token, metadata)
	return nil
}

func (s *SessionService) SignIn(ctx context.Context, credentials domain.Credentials) error {
	credentials.Email = strings.TrimSpace(credentials.Email)
	if credentials.Email == "" || credentials.Password == "" {
		return fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	token, err := s.auth.Login(ctx, credentials)
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	return s.establish(ctx, credentials.Email, token)
}

func (s *SessionService) Register(ctx context.Context, registration domain.Registration) error {
	registration.Name = strings.TrimSpace(registration.Name)
	registration.Email = strings.TrimSpace(registration.Email)
	if registration.Name == "" || registration.Email == "" || registration.Password == "" {
		return fmt.Errorf("%w: name, email and password are required", domain.ErrInvalidInput)
	}
	if err := registration.Validate(); err != nil {
		return err
	}

	token, err := s.auth.Register(ctx, registration)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	return s.establish(ctx, registration.Email, token)
}

// SignOut always ends the local session. The server-side logout is best
// effort and only attempted while a token is held.
func (s *SessionService) SignOut(ctx context.Context) error {
	if s.session.State() == domain.SessionAuthenticated {
		if err := s.auth.Logout(ctx); err != nil {
			s.logger.Warn("server sign-out failed", zap.Error(err))
		}
	}

	email := s.session.Metadata().Email
	s.session.reset()
	if err := s.clearLocal(ctx); err != nil {
		return err
	}

	s.logger.Info("signed out", zap.String("email", email))
	return nil
}

func (s *SessionService) Token(ctx context.Context) (string, error) {
	return s.session.Token(ctx)
}

func (s *SessionService) Current(ctx context.Context) (SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return SessionInfo{}, err
	}

	return SessionInfo{
		State:    s.session.State(),
		Metadata: s.session.Metadata(),
	}, nil
}

func (s *SessionService) Profile(ctx context.Context) (domain.User, error) {
	if s.session.State() != domain.SessionAuthenticated {
		return domain.User{}, domain.ErrNotAuthenticated
	}

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("load profile: %w", err)
	}
	return user, nil
}

func (s *SessionService) establish(ctx context.Context, email, token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("sign in: server returned an empty token")
	}

	metadata := domain.SessionMetadata{
		Email:      email,
		ServerURL:  s.serverURL,
		SignedInAt: s.clock.Now(),
	}
	applyTokenClaims(&metadata, token)

	if err := s.store.Put(ctx, SessionTokenKey, token); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}

	if err := s.repo.Save(ctx, metadata); err != nil {
		if rollbackErr := s.store.Delete(ctx, SessionTokenKey); rollbackErr != nil {
			return fmt.Errorf("save session and rollback stored token: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("save session: %w", err)
	}

	s.session.authenticate(token, metadata)
	s.logger.Info("signed in", zap.String("email", email))
	return nil
}

func (s *SessionService) clearLocal(ctx context.Context) error {
	var errs error
	if err := s.store.Delete(ctx, SessionTokenKey); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		errs = errors.Join(errs, fmt.Errorf("delete session token: %w", err))
	}
	if err := s.repo.Clear(ctx); err != nil {
		errs = errors.Join(errs, fmt.Errorf("clear session metadata: %w", err))
	}
	return errs
}

// applyTokenClaims reads exp and sub from a JWT bearer token without verifying
// it. Opaque tokens are left alone.
func applyTokenClaims(metadata *domain.SessionMetadata, token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		metadata.ExpiresAt = exp.Time
	}

	switch sub := claims["sub"].(type) {
	case string:
		metadata.Subject = sub
	case float64:
		metadata.Subject = strconv.FormatFloat(sub, 'f', -1, 64)
	}
}

package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/subs-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/subs-cli/internal/adapters/secrets/pass"
	"github.com/bnema/subs-cli/internal/domain"
	"github.com/bnema/subs-cli/internal/ports"
	"go.uber.org/zap"
)

// Store writes to primary and falls back to the second backend when the
// primary is unusable. Reads consult both; deletes clear both.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	logger   *zap.Logger
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore, logger *zap.Logger) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{primary: primary, fallback: fallback, logger: logger}, nil
}

func NewPassFirstWithFileFallback(passBinary string, fileRoot string, logger *zap.Logger) (*Store, error) {
	return NewStore(passstore.NewStore(passBinary), filestore.NewStore(fileRoot), logger)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		// Drop any copy written while the primary was down.
		if cleanupErr := s.fallback.Delete(ctx, key); cleanupErr != nil && !isNotFound(cleanupErr) {
			s.logger.Debug("remove fallback secret copy", zap.String("key", key), zap.Error(cleanupErr))
		}
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	s.logFallback("put", err)
	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}
	if !isNotFound(err) {
		s.logFallback("get", err)
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}
	if isNotFound(err) && isNotFound(fallbackErr) {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if err != nil && shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)

	var errs error
	if err != nil && !isNotFound(err) {
		errs = errors.Join(errs, fmt.Errorf("primary backend delete failed: %w", err))
	}
	if fallbackErr != nil && !isNotFound(fallbackErr) {
		errs = errors.Join(errs, fmt.Errorf("fallback backend delete failed: %w", fallbackErr))
	}

	// Only fail when neither backend could be cleared.
	if err == nil || fallbackErr == nil {
		if errs != nil {
			s.logger.Debug("secret delete partially failed", zap.String("key", key), zap.Error(errs))
		}
		return nil
	}
	return errs
}

// logFallback stays at debug when pass is simply not installed, which is the
// normal state on machines that rely on the file store.
func (s *Store) logFallback(op string, err error) {
	if errors.Is(err, passstore.ErrUnavailable) {
		s.logger.Debug("primary secret store unavailable, using fallback", zap.String("op", op), zap.Error(err))
		return
	}
	s.logger.Warn("primary secret store unavailable, using fallback", zap.String("op", op), zap.Error(err))
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrSecretNotFound)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

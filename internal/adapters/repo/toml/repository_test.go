package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/subs-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T, path string) *SessionRepository {
	t.Helper()

	config := viper.New()
	config.Set(SessionPathKey, path)

	repo, err := NewSessionRepository(config)
	require.NoError(t, err)
	return repo
}

func TestSessionRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newRepository(t, filepath.Join(t.TempDir(), "session.toml"))
	metadata := domain.SessionMetadata{
		Email:      "ana@example.com",
		Subject:    "42",
		ServerURL:  "http://localhost:8090/api",
		SignedInAt: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		ExpiresAt:  time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, repo.Save(context.Background(), metadata))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, metadata, got)
}

func TestSessionRepositoryOmitsZeroExpiry(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.toml")
	repo := newRepository(t, path)

	require.NoError(t, repo.Save(context.Background(), domain.SessionMetadata{
		Email:      "ana@example.com",
		SignedInAt: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "[session]")
	assert.NotContains(t, string(data), "expires_at")

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, got.ExpiresAt.IsZero())
}

func TestSessionRepositoryMissingFile(t *testing.T) {
	t.Parallel()

	repo := newRepository(t, filepath.Join(t.TempDir(), "missing", "session.toml"))

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.NoError(t, repo.Clear(context.Background()))
}

func TestSessionRepositorySaveCreatesDirectoryAndEnforcesPermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "session.toml")
	repo := newRepository(t, path)

	require.NoError(t, repo.Save(context.Background(), domain.SessionMetadata{Email: "ana@example.com"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(sessionFileMode), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(sessionDirMode), dirInfo.Mode().Perm())
}

func TestSessionRepositoryClearRemovesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.toml")
	repo := newRepository(t, path)

	require.NoError(t, repo.Save(context.Background(), domain.SessionMetadata{Email: "ana@example.com"}))
	require.NoError(t, repo.Clear(context.Background()))

	_, err := os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = repo.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepositoryMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = [\n"), 0o600))

	_, err := newRepository(t, path).Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode session file")
}

func TestSessionRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"version = 999",
		"",
		"[session]",
		"email = \"ana@example.com\"",
		"",
	}, "\n")), 0o600))

	_, err := newRepository(t, path).Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported session schema version")
}

func TestSessionRepositoryCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newRepository(t, filepath.Join(t.TempDir(), "session.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.SessionMetadata{Email: "ana@example.com"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSessionRepositoryConcurrentSavesAcrossInstancesLeaveValidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.toml")
	repoA := newRepository(t, path)
	repoB := newRepository(t, path)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	write := func(repo *SessionRepository, email string) {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repo.Save(context.Background(), domain.SessionMetadata{Email: email})
		}
	}
	go write(repoA, "a@example.com")
	go write(repoB, "b@example.com")

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	got, err := repoA.Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, []string{"a@example.com", "b@example.com"}, got.Email)
}

func TestNewSessionRepositoryDefaultsUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	repo, err := NewSessionRepository(viper.New())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "subs", "session.toml"), repo.Path())
}

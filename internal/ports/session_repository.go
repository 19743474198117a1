package ports

import (
	"context"

	"github.com/bnema/subs-cli/internal/domain"
)

// SessionRepository persists the non-secret metadata of the signed-in session.
type SessionRepository interface {
	Load(ctx context.Context) (domain.SessionMetadata, error)
	Save(ctx context.Context, metadata domain.SessionMetadata) error
	Clear(ctx context.Context) error
}

package ports

import (
	"context"

	"github.com/bnema/subs-cli/internal/domain"
)

// AuthGateway talks to the backend's account endpoints. Login and Register
// return the bearer token issued by the server.
type AuthGateway interface {
	Login(ctx context.Context, credentials domain.Credentials) (string, error)
	Register(ctx context.Context, registration domain.Registration) (string, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (domain.User, error)
}

type SubscriptionGateway interface {
	List(ctx context.Context) ([]domain.Subscription, error)
	Get(ctx context.Context, id domain.SubscriptionID) (domain.Subscription, error)
	Create(ctx context.Context, draft domain.SubscriptionDraft) error
	Update(ctx context.Context, id domain.SubscriptionID, draft domain.SubscriptionDraft) error
	Delete(ctx context.Context, id domain.SubscriptionID) error
}

// TokenSource yields the bearer token for authenticated requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

package application

import (
	"time"

	"github.com/bnema/subs-cli/internal/domain"
)

type SessionInfo struct {
	State    domain.SessionState
	Metadata domain.SessionMetadata
}

func (i SessionInfo) Authenticated() bool {
	return i.State == domain.SessionAuthenticated
}

// SubscriptionView pairs a subscription with its renewal status as of the
// dashboard's evaluation instant. Status is nil when the renewal date could
// not be parsed, and Problem then carries the reason.
type SubscriptionView struct {
	Subscription domain.Subscription
	Status       *domain.RenewalStatus
	Problem      string
}

type Dashboard struct {
	Subscriptions []SubscriptionView
	Summary       domain.Summary
	GeneratedAt   time.Time
}

// Find returns the row for id from an already fetched dashboard.
func (d Dashboard) Find(id domain.SubscriptionID) (SubscriptionView, bool) {
	for _, view := range d.Subscriptions {
		if view.Subscription.ID == id {
			return view, true
		}
	}
	return SubscriptionView{}, false
}

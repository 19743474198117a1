package api

import (
	"context"
	"net/http"

	"github.com/bnema/subs-cli/internal/domain"
	"github.com/bnema/subs-cli/internal/ports"
)

var _ ports.SubscriptionGateway = (*Client)(nil)

func (c *Client) List(ctx context.Context) ([]domain.Subscription, error) {
	var resp dataEnvelope[[]subscriptionDTO]
	if err := c.do(ctx, http.MethodGet, "/subscriptions", nil, &resp); err != nil {
		return nil, err
	}

	subscriptions := make([]domain.Subscription, 0, len(resp.Data))
	for _, dto := range resp.Data {
		subscriptions = append(subscriptions, dto.toDomain())
	}
	return subscriptions, nil
}

func (c *Client) Get(ctx context.Context, id domain.SubscriptionID) (domain.Subscription, error) {
	var resp dataEnvelope[subscriptionDTO]
	if err := c.do(ctx, http.MethodGet, subscriptionPath(id), nil, &resp); err != nil {
		return domain.Subscription{}, notFoundAs(err, domain.ErrSubscriptionNotFound)
	}
	return resp.Data.toDomain(), nil
}

func (c *Client) Create(ctx context.Context, draft domain.SubscriptionDraft) error {
	return c.do(ctx, http.MethodPost, "/subscriptions", newSubscriptionPayload(draft), nil)
}

func (c *Client) Update(ctx context.Context, id domain.SubscriptionID, draft domain.SubscriptionDraft) error {
	err := c.do(ctx, http.MethodPut, subscriptionPath(id), newSubscriptionPayload(draft), nil)
	return notFoundAs(err, domain.ErrSubscriptionNotFound)
}

func (c *Client) Delete(ctx context.Context, id domain.SubscriptionID) error {
	err := c.do(ctx, http.MethodDelete, subscriptionPath(id), nil, nil)
	return notFoundAs(err, domain.ErrSubscriptionNotFound)
}

func subscriptionPath(id domain.SubscriptionID) string {
	return "/subscriptions/" + id.String()
}

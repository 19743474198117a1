package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/subs-cli/internal/domain"
	"github.com/bnema/subs-cli/internal/ports"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type SubscriptionService struct {
	gateway   ports.SubscriptionGateway
	evaluator domain.RenewalEvaluator
	clock     ports.Clock
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewSubscriptionService(
	gateway ports.SubscriptionGateway,
	evaluator domain.RenewalEvaluator,
	clock ports.Clock,
	logger *zap.Logger,
) (*SubscriptionService, error) {
	validate, err := newInputValidator()
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SubscriptionService{
		gateway:   gateway,
		evaluator: evaluator,
		clock:     clock,
		validate:  validate,
		logger:    logger,
	}, nil
}

// Dashboard fetches the full collection and evaluates every row against a
// single instant, so all statuses and the summary agree with each other.
func (s *SubscriptionService) Dashboard(ctx context.Context) (Dashboard, error) {
	subscriptions, err := s.gateway.List(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list subscriptions: %w", err)
	}

	return s.buildDashboard(subscriptions), nil
}

func (s *SubscriptionService) Detail(ctx context.Context, id domain.SubscriptionID) (SubscriptionView, error) {
	subscription, err := s.gateway.Get(ctx, id)
	if err != nil {
		return SubscriptionView{}, fmt.Errorf("get subscription %s: %w", id, err)
	}

	return s.view(subscription, s.clock.Now()), nil
}

func (s *SubscriptionService) Create(ctx context.Context, input SubscriptionInput) (Dashboard, error) {
	input = input.normalized()
	if err := validateInput(s.validate, input); err != nil {
		return Dashboard{}, err
	}

	if err := s.gateway.Create(ctx, input.draft()); err != nil {
		return Dashboard{}, fmt.Errorf("create subscription: %w", err)
	}
	s.logger.Info("subscription created", zap.String("service", input.ServiceName))

	return s.Dashboard(ctx)
}

func (s *SubscriptionService) Update(ctx context.Context, id domain.SubscriptionID, input SubscriptionInput) (Dashboard, error) {
	input = input.normalized()
	if err := validateInput(s.validate, input); err != nil {
		return Dashboard{}, err
	}

	if err := s.gateway.Update(ctx, id, input.draft()); err != nil {
		return Dashboard{}, fmt.Errorf("update subscription %s: %w", id, err)
	}
	s.logger.Info("subscription updated", zap.Stringer("id", id))

	return s.Dashboard(ctx)
}

func (s *SubscriptionService) Delete(ctx context.Context, id domain.SubscriptionID) (Dashboard, error) {
	if err := s.gateway.Delete(ctx, id); err != nil {
		return Dashboard{}, fmt.Errorf("delete subscription %s: %w", id, err)
	}
	s.logger.Info("subscription deleted", zap.Stringer("id", id))

	return s.Dashboard(ctx)
}

func (s *SubscriptionService) buildDashboard(subscriptions []domain.Subscription) Dashboard {
	now := s.clock.Now()

	views := make([]SubscriptionView, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		views = append(views, s.view(subscription, now))
	}

	summary := domain.Summarize(subscriptions, now, s.evaluator)
	for _, warning := range summary.Warnings {
		s.logger.Warn("subscription excluded from summary",
			zap.Stringer("id", warning.SubscriptionID),
			zap.String("service", warning.Service),
			zap.Error(warning.Err),
		)
	}

	return Dashboard{
		Subscriptions: views,
		Summary:       summary,
		GeneratedAt:   now,
	}
}

func (s *SubscriptionService) view(subscription domain.Subscription, now time.Time) SubscriptionView {
	view := SubscriptionView{Subscription: subscription}

	status, err := s.evaluator.Evaluate(subscription.RenewalDate, now)
	if err != nil {
		view.Problem = err.Error()
		return view
	}

	view.Status = &status
	return view
}

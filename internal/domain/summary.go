package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SummaryWarning records a subscription left out of a dashboard metric.
type SummaryWarning struct {
	SubscriptionID SubscriptionID
	Service        string
	Message        string
	Err            error `json:"-"`
}

func (w SummaryWarning) Error() string {
	return fmt.Sprintf("subscription %s (%s): %s", w.SubscriptionID, w.Service, w.Message)
}

func (w SummaryWarning) Unwrap() error {
	return w.Err
}

type Summary struct {
	TotalMonthly      decimal.Decimal
	ExpiringSoonCount int
	Warnings          []SummaryWarning
}

func (s Summary) TotalMonthlyText() string {
	return FormatBRL(s.TotalMonthly)
}

// Summarize folds the collection into the dashboard metrics. Rows with an
// invalid price are excluded from the total and rows with an invalid renewal
// date from the expiring count; both are reported as warnings.
func Summarize(subscriptions []Subscription, now time.Time, evaluator RenewalEvaluator) Summary {
	summary := Summary{TotalMonthly: decimal.Zero}

	for _, sub := range subscriptions {
		price, err := ParsePrice(sub.Price)
		if err != nil {
			summary.Warnings = append(summary.Warnings, newSummaryWarning(sub, err))
		} else {
			summary.TotalMonthly = summary.TotalMonthly.Add(price)
		}

		status, err := evaluator.Evaluate(sub.RenewalDate, now)
		if err != nil {
			summary.Warnings = append(summary.Warnings, newSummaryWarning(sub, err))
			continue
		}
		if status.ExpiringSoon() {
			summary.ExpiringSoonCount++
		}
	}

	return summary
}

func newSummaryWarning(sub Subscription, err error) SummaryWarning {
	return SummaryWarning{
		SubscriptionID: sub.ID,
		Service:        sub.ServiceName(),
		Message:        err.Error(),
		Err:            err,
	}
}

package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	RenewalDateLayout = "2006-01-02"
	DefaultCycleDays  = 30

	imminentWindowDays = 3
	soonWindowDays     = 7
	millisPerDay       = 86_400_000
)

type RenewalCategory string

const (
	RenewalOverdue       RenewalCategory = "overdue"
	RenewalDueImminently RenewalCategory = "due_imminently"
	RenewalDueSoon       RenewalCategory = "due_soon"
	RenewalActive        RenewalCategory = "active"
)

// Label returns the badge text shown next to a subscription.
func (c RenewalCategory) Label() string {
	switch c {
	case RenewalOverdue:
		return "Vencido"
	case RenewalDueImminently:
		return "Vence em breve"
	case RenewalDueSoon:
		return "Próximo de vencer"
	case RenewalActive:
		return "Ativo"
	default:
		return string(c)
	}
}

func (c RenewalCategory) Tier() Tier {
	switch c {
	case RenewalOverdue, RenewalDueImminently:
		return TierDanger
	case RenewalDueSoon:
		return TierWarning
	default:
		return TierPrimary
	}
}

// Tier is the colour tier a presentation layer maps onto its palette.
type Tier string

const (
	TierDanger  Tier = "danger"
	TierWarning Tier = "warning"
	TierPrimary Tier = "primary"
)

type RenewalStatus struct {
	DaysUntilRenewal int
	Category         RenewalCategory
	// Progress is only meaningful when ProgressVisible is set.
	Progress        float64
	ProgressVisible bool
}

func (s RenewalStatus) Tier() Tier {
	return s.Category.Tier()
}

// MarshalJSON adds the derived tier and display texts. Progress is left out
// when it is not shown.
func (s RenewalStatus) MarshalJSON() ([]byte, error) {
	var progress *float64
	if s.ProgressVisible {
		progress = &s.Progress
	}

	return json.Marshal(struct {
		DaysUntilRenewal int
		Category         RenewalCategory
		Label            string
		Tier             Tier
		DueText          string
		CountdownText    string
		Progress         *float64 `json:",omitempty"`
		ProgressVisible  bool
	}{
		DaysUntilRenewal: s.DaysUntilRenewal,
		Category:         s.Category,
		Label:            s.Category.Label(),
		Tier:             s.Tier(),
		DueText:          s.DueText(),
		CountdownText:    s.CountdownText(),
		Progress:         progress,
		ProgressVisible:  s.ProgressVisible,
	})
}

// ExpiringSoon reports whether the renewal falls within the dashboard's
// seven-day lookahead, today included.
func (s RenewalStatus) ExpiringSoon() bool {
	return s.DaysUntilRenewal >= 0 && s.DaysUntilRenewal <= soonWindowDays
}

// DueText is the list-row countdown: "Vence em 3 dias", "Vence hoje", "Venceu há 2 dias".
func (s RenewalStatus) DueText() string {
	switch {
	case s.DaysUntilRenewal > 0:
		return "Vence em " + dayCount(s.DaysUntilRenewal)
	case s.DaysUntilRenewal == 0:
		return "Vence hoje"
	default:
		return "Venceu há " + dayCount(-s.DaysUntilRenewal)
	}
}

// CountdownText is the detail-view countdown: "3 dias", "Hoje", "Vencido".
func (s RenewalStatus) CountdownText() string {
	switch {
	case s.DaysUntilRenewal > 0:
		return dayCount(s.DaysUntilRenewal)
	case s.DaysUntilRenewal == 0:
		return "Hoje"
	default:
		return "Vencido"
	}
}

func dayCount(n int) string {
	if n == 1 {
		return "1 dia"
	}
	return fmt.Sprintf("%d dias", n)
}

// RenewalEvaluator turns a stored renewal date into a RenewalStatus. The zero
// value uses a 30-day progress cycle and counts ceil((renewal midnight - now) / 24h)
// from the exact instant of now.
type RenewalEvaluator struct {
	CycleDays int
	// DateLocation is the zone the renewal date's midnight is taken in.
	// Nil means now's zone. A zone other than now's makes the count depend
	// on the time of day.
	DateLocation *time.Location
	// CalendarDays counts whole calendar days between now's date in its own
	// zone and the renewal date, ignoring DateLocation, the time of day and
	// daylight-saving shifts.
	CalendarDays bool
}

func EvaluateRenewal(renewalDate string, now time.Time) (RenewalStatus, error) {
	return RenewalEvaluator{}.Evaluate(renewalDate, now)
}

func (e RenewalEvaluator) Evaluate(renewalDate string, now time.Time) (RenewalStatus, error) {
	due, err := ParseRenewalDate(renewalDate, e.dateLocation(now))
	if err != nil {
		return RenewalStatus{}, err
	}

	return e.classify(e.daysUntil(due, now)), nil
}

func (e RenewalEvaluator) dateLocation(now time.Time) *time.Location {
	if e.DateLocation == nil || e.CalendarDays {
		return now.Location()
	}
	return e.DateLocation
}

func (e RenewalEvaluator) daysUntil(due, now time.Time) int {
	if e.CalendarDays {
		// Whole days between the two dates; DST-length days count as one.
		return int(calendarDate(due).Sub(calendarDate(now)) / (24 * time.Hour))
	}

	diff := due.Sub(now).Milliseconds()
	return int(math.Ceil(float64(diff) / millisPerDay))
}

func (e RenewalEvaluator) classify(days int) RenewalStatus {
	status := RenewalStatus{DaysUntilRenewal: days}

	switch {
	case days < 0:
		status.Category = RenewalOverdue
		return status
	case days <= imminentWindowDays:
		status.Category = RenewalDueImminently
	case days <= soonWindowDays:
		status.Category = RenewalDueSoon
	default:
		status.Category = RenewalActive
	}

	status.Progress = clampFraction(float64(days) / float64(e.cycleDays()))
	status.ProgressVisible = true
	return status
}

func (e RenewalEvaluator) cycleDays() int {
	if e.CycleDays <= 0 {
		return DefaultCycleDays
	}
	return e.CycleDays
}

// ParseRenewalDate reads a naive YYYY-MM-DD date as midnight in loc. Full
// RFC 3339 timestamps are accepted and reduced to their calendar date.
func ParseRenewalDate(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	trimmed := strings.TrimSpace(raw)
	if parsed, err := time.ParseInLocation(RenewalDateLayout, trimmed, loc); err == nil {
		return parsed, nil
	}

	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		year, month, day := parsed.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, loc), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
}

// calendarDate maps t's wall-clock date onto a UTC midnight.
func calendarDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func clampFraction(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

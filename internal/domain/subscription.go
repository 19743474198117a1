package domain

import (
	"fmt"
	"strings"
)

type SubscriptionID int

func (id SubscriptionID) String() string {
	return fmt.Sprintf("%d", int(id))
}

type PeriodUnit string

const (
	PeriodDay   PeriodUnit = "day"
	PeriodWeek  PeriodUnit = "week"
	PeriodMonth PeriodUnit = "month"
	PeriodYear  PeriodUnit = "year"
)

func (u PeriodUnit) Valid() bool {
	switch u {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return true
	default:
		return false
	}
}

type Period struct {
	Value int
	Unit  PeriodUnit
}

// Label renders the period in pt-BR, e.g. "1 mês" or "7 dias".
func (p Period) Label() string {
	if p.Value <= 0 || p.Unit == "" {
		return "-"
	}

	singular, plural := periodUnitNames(p.Unit)
	if p.Value == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", p.Value, plural)
}

func periodUnitNames(unit PeriodUnit) (string, string) {
	switch unit {
	case PeriodDay:
		return "dia", "dias"
	case PeriodWeek:
		return "semana", "semanas"
	case PeriodMonth:
		return "mês", "meses"
	case PeriodYear:
		return "ano", "anos"
	default:
		return string(unit), string(unit)
	}
}

var (
	DefaultRenewalPeriod = Period{Value: 1, Unit: PeriodMonth}
	DefaultNotifyBefore  = Period{Value: 7, Unit: PeriodDay}
)

type Service struct {
	ID   int
	Name string
}

type Subscription struct {
	ID               SubscriptionID
	UserID           int
	ServiceID        int
	Service          Service
	Price            string
	RenewalDate      string
	NotificationDate string
	RenewalPeriod    Period
	NotifyBefore     Period
}

func (s Subscription) ServiceName() string {
	name := strings.TrimSpace(s.Service.Name)
	if name == "" {
		return fmt.Sprintf("Assinatura #%d", s.ID)
	}
	return name
}

// SubscriptionDraft is the writable part of a subscription as sent to the backend.
type SubscriptionDraft struct {
	ServiceName   string
	Price         string
	RenewalDate   string
	RenewalPeriod Period
	NotifyBefore  Period
}

type User struct {
	ID        int
	Name      string
	Email     string
	CreatedAt string
}

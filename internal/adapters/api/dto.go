package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bnema/subs-cli/internal/domain"
)

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// flexString accepts a JSON string or number. Decimal columns arrive as
// strings from some backends and as numbers from others.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = ""
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*f = flexString(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("decode %s as string or number: %w", data, err)
	}
	*f = flexString(number.String())
	return nil
}

type serviceDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type subscriptionDTO struct {
	ID                 int         `json:"id"`
	UserID             int         `json:"user_id"`
	ServiceID          int         `json:"service_id"`
	Price              flexString  `json:"price"`
	RenewalDate        string      `json:"renewal_date"`
	NotificationDate   string      `json:"notification_date"`
	RenewalPeriodValue int         `json:"renewal_period_value"`
	RenewalPeriodUnit  string      `json:"renewal_period_unit"`
	NotifyBeforeValue  int         `json:"notify_before_value"`
	NotifyBeforeUnit   string      `json:"notify_before_unit"`
	Service            *serviceDTO `json:"service"`
}

func (d subscriptionDTO) toDomain() domain.Subscription {
	sub := domain.Subscription{
		ID:               domain.SubscriptionID(d.ID),
		UserID:           d.UserID,
		ServiceID:        d.ServiceID,
		Price:            string(d.Price),
		RenewalDate:      d.RenewalDate,
		NotificationDate: d.NotificationDate,
		RenewalPeriod: domain.Period{
			Value: d.RenewalPeriodValue,
			Unit:  domain.PeriodUnit(d.RenewalPeriodUnit),
		},
		NotifyBefore: domain.Period{
			Value: d.NotifyBeforeValue,
			Unit:  domain.PeriodUnit(d.NotifyBeforeUnit),
		},
	}
	if d.Service != nil {
		sub.Service = domain.Service{ID: d.Service.ID, Name: d.Service.Name}
	}
	return sub
}

type servicePayload struct {
	Name string `json:"name"`
}

type subscriptionPayload struct {
	Service            servicePayload `json:"service"`
	Price              string         `json:"price"`
	RenewalDate        string         `json:"renewal_date"`
	RenewalPeriodValue int            `json:"renewal_period_value"`
	RenewalPeriodUnit  string         `json:"renewal_period_unit"`
	NotifyBeforeValue  int            `json:"notify_before_value"`
	NotifyBeforeUnit   string         `json:"notify_before_unit"`
}

func newSubscriptionPayload(draft domain.SubscriptionDraft) subscriptionPayload {
	return subscriptionPayload{
		Service:            servicePayload{Name: draft.ServiceName},
		Price:              draft.Price,
		RenewalDate:        draft.RenewalDate,
		RenewalPeriodValue: draft.RenewalPeriod.Value,
		RenewalPeriodUnit:  string(draft.RenewalPeriod.Unit),
		NotifyBeforeValue:  draft.NotifyBefore.Value,
		NotifyBeforeUnit:   string(draft.NotifyBefore.Unit),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
}

func (r tokenResponse) token() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

type userDTO struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func (d userDTO) toDomain() domain.User {
	return domain.User{ID: d.ID, Name: d.Name, Email: d.Email, CreatedAt: d.CreatedAt}
}

package application

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/bnema/subs-cli/internal/domain"
	"github.com/go-playground/validator/v10"
)

// SubscriptionInput is the create/edit form. Field names follow the backend's
// JSON payload so validation messages name what the server would reject.
type SubscriptionInput struct {
	ServiceName        string `json:"service" validate:"required"`
	Price              string `json:"price" validate:"required,price"`
	RenewalDate        string `json:"renewal_date" validate:"required,renewal_date"`
	RenewalPeriodValue int    `json:"renewal_period_value" validate:"gte=1"`
	RenewalPeriodUnit  string `json:"renewal_period_unit" validate:"oneof=day week month year"`
	NotifyBeforeValue  int    `json:"notify_before_value" validate:"gte=0"`
	NotifyBeforeUnit   string `json:"notify_before_unit" validate:"oneof=day week month year"`
}

// NewSubscriptionInput returns an empty form carrying the default renewal
// period (1 month) and notification lead time (7 days).
func NewSubscriptionInput() SubscriptionInput {
	return SubscriptionInput{
		RenewalPeriodValue: domain.DefaultRenewalPeriod.Value,
		RenewalPeriodUnit:  string(domain.DefaultRenewalPeriod.Unit),
		NotifyBeforeValue:  domain.DefaultNotifyBefore.Value,
		NotifyBeforeUnit:   string(domain.DefaultNotifyBefore.Unit),
	}
}

// InputFromSubscription pre-fills the edit form. Missing periods fall back to
// the defaults.
func InputFromSubscription(sub domain.Subscription) SubscriptionInput {
	input := NewSubscriptionInput()
	input.ServiceName = sub.Service.Name
	input.Price = sub.Price
	input.RenewalDate = sub.RenewalDate

	if sub.RenewalPeriod.Value > 0 && sub.RenewalPeriod.Unit.Valid() {
		input.RenewalPeriodValue = sub.RenewalPeriod.Value
		input.RenewalPeriodUnit = string(sub.RenewalPeriod.Unit)
	}
	if sub.NotifyBefore.Unit.Valid() {
		input.NotifyBeforeValue = sub.NotifyBefore.Value
		input.NotifyBeforeUnit = string(sub.NotifyBefore.Unit)
	}

	return input
}

func (in SubscriptionInput) normalized() SubscriptionInput {
	in.ServiceName = strings.TrimSpace(in.ServiceName)
	in.Price = strings.TrimSpace(in.Price)
	in.RenewalDate = strings.TrimSpace(in.RenewalDate)
	in.RenewalPeriodUnit = strings.ToLower(strings.TrimSpace(in.RenewalPeriodUnit))
	in.NotifyBeforeUnit = strings.ToLower(strings.TrimSpace(in.NotifyBeforeUnit))
	return in
}

func (in SubscriptionInput) draft() domain.SubscriptionDraft {
	return domain.SubscriptionDraft{
		ServiceName: in.ServiceName,
		Price:       in.Price,
		RenewalDate: in.RenewalDate,
		RenewalPeriod: domain.Period{
			Value: in.RenewalPeriodValue,
			Unit:  domain.PeriodUnit(in.RenewalPeriodUnit),
		},
		NotifyBefore: domain.Period{
			Value: in.NotifyBeforeValue,
			Unit:  domain.PeriodUnit(in.NotifyBeforeUnit),
		},
	}
}

func newInputValidator() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		_, err := domain.ParsePrice(fl.Field().String())
		return err == nil
	}); err != nil {
		return nil, fmt.Errorf("register price validation: %w", err)
	}
	if err := validate.RegisterValidation("renewal_date", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseRenewalDate(fl.Field().String(), nil)
		return err == nil
	}); err != nil {
		return nil, fmt.Errorf("register renewal_date validation: %w", err)
	}

	return validate, nil
}

func validateInput(validate *validator.Validate, input SubscriptionInput) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate subscription: %w", err)
	}

	var errs error
	for _, fieldErr := range fieldErrs {
		errs = errors.Join(errs, translateFieldError(fieldErr))
	}
	return errs
}

func translateFieldError(fieldErr validator.FieldError) error {
	field := fieldErr.Field()

	switch fieldErr.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, field)
	case "price":
		return fmt.Errorf("%s: %w: %q", field, domain.ErrInvalidPrice, fieldErr.Value())
	case "renewal_date":
		return fmt.Errorf("%s: %w: %q (expected YYYY-MM-DD)", field, domain.ErrInvalidDateFormat, fieldErr.Value())
	case "oneof":
		return fmt.Errorf("%w: %s must be one of %s", domain.ErrInvalidInput, field, strings.ReplaceAll(fieldErr.Param(), " ", ", "))
	case "gte":
		return fmt.Errorf("%w: %s must be at least %s", domain.ErrInvalidInput, field, fieldErr.Param())
	default:
		return fmt.Errorf("%w: %s failed %s", domain.ErrInvalidInput, field, fieldErr.Tag())
	}
}

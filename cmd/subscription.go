package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	dashboardrender "github.com/bnema/subs-cli/internal/adapters/render/dashboard"
	"github.com/bnema/subs-cli/internal/application"
)

const savingLabel = "Salvando..."

var errNothingToUpdate = errors.New("nothing to update: pass at least one field flag")

func newShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one subscription with its renewal countdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSubscriptionID(args[0])
			if err != nil {
				return err
			}

			view, err := awaitResult(cmd, asJSON, loadingLabel, func(ctx context.Context) (application.SubscriptionView, error) {
				return app.subscriptions.Detail(ctx, id)
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), view)
			}

			rendered, err := app.renderDetail(view, dashboardrender.RenderOptions{})
			if err != nil {
				return fmt.Errorf("render subscription: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newAddCmd(app *app) *cobra.Command {
	var asJSON bool
	input := application.NewSubscriptionInput()

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a subscription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dashboard, err := awaitResult(cmd, asJSON, savingLabel, func(ctx context.Context) (application.Dashboard, error) {
				return app.subscriptions.Create(ctx, input)
			})
			if err != nil {
				return err
			}

			if !asJSON {
				printSuccess(cmd.OutOrStdout(), "Added %s", input.ServiceName)
			}
			return writeDashboardOutput(cmd, app, dashboard, asJSON)
		},
	}

	bindSubscriptionFlags(cmd, &input)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newEditCmd(app *app) *cobra.Command {
	var asJSON bool
	changes := application.NewSubscriptionInput()

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a subscription; fields without a flag keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSubscriptionID(args[0])
			if err != nil {
				return err
			}
			if !anySubscriptionFlagChanged(cmd) {
				return errNothingToUpdate
			}

			var input application.SubscriptionInput
			dashboard, err := awaitResult(cmd, asJSON, savingLabel, func(ctx context.Context) (application.Dashboard, error) {
				current, err := app.subscriptions.Detail(ctx, id)
				if err != nil {
					return application.Dashboard{}, err
				}

				input = application.InputFromSubscription(current.Subscription)
				overlayChangedFlags(cmd, &input, changes)
				return app.subscriptions.Update(ctx, id, input)
			})
			if err != nil {
				return err
			}

			if !asJSON {
				printSuccess(cmd.OutOrStdout(), "Updated %s", input.ServiceName)
			}
			return writeDashboardOutput(cmd, app, dashboard, asJSON)
		},
	}

	bindSubscriptionFlags(cmd, &changes)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newDeleteCmd(app *app) *cobra.Command {
	var yes bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a subscription",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSubscriptionID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				confirmed, err := newPrompter(cmd).Confirm(fmt.Sprintf("Delete subscription #%s?", id))
				if err != nil {
					return err
				}
				if !confirmed {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return err
				}
			}

			dashboard, err := awaitResult(cmd, asJSON, savingLabel, func(ctx context.Context) (application.Dashboard, error) {
				return app.subscriptions.Delete(ctx, id)
			})
			if err != nil {
				return err
			}

			if !asJSON {
				printSuccess(cmd.OutOrStdout(), "Deleted subscription #%s", id)
			}
			return writeDashboardOutput(cmd, app, dashboard, asJSON)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

var subscriptionFlagNames = []string{
	"service", "price", "renewal-date",
	"period-value", "period-unit",
	"notify-value", "notify-unit",
}

func bindSubscriptionFlags(cmd *cobra.Command, input *application.SubscriptionInput) {
	flags := cmd.Flags()
	flags.StringVar(&input.ServiceName, "service", input.ServiceName, "Service name, e.g. Netflix")
	flags.StringVar(&input.Price, "price", input.Price, "Monthly price, e.g. 39.90")
	flags.StringVar(&input.RenewalDate, "renewal-date", input.RenewalDate, "Next renewal date (YYYY-MM-DD)")
	flags.IntVar(&input.RenewalPeriodValue, "period-value", input.RenewalPeriodValue, "Renewal period length")
	flags.StringVar(&input.RenewalPeriodUnit, "period-unit", input.RenewalPeriodUnit, "Renewal period unit (day|week|month|year)")
	flags.IntVar(&input.NotifyBeforeValue, "notify-value", input.NotifyBeforeValue, "Notify this many units before renewal")
	flags.StringVar(&input.NotifyBeforeUnit, "notify-unit", input.NotifyBeforeUnit, "Notification unit (day|week|month|year)")
}

func anySubscriptionFlagChanged(cmd *cobra.Command) bool {
	for _, name := range subscriptionFlagNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func overlayChangedFlags(cmd *cobra.Command, dst *application.SubscriptionInput, src application.SubscriptionInput) {
	flags := cmd.Flags()
	if flags.Changed("service") {
		dst.ServiceName = src.ServiceName
	}
	if flags.Changed("price") {
		dst.Price = src.Price
	}
	if flags.Changed("renewal-date") {
		dst.RenewalDate = src.RenewalDate
	}
	if flags.Changed("period-value") {
		dst.RenewalPeriodValue = src.RenewalPeriodValue
	}
	if flags.Changed("period-unit") {
		dst.RenewalPeriodUnit = src.RenewalPeriodUnit
	}
	if flags.Changed("notify-value") {
		dst.NotifyBeforeValue = src.NotifyBeforeValue
	}
	if flags.Changed("notify-unit") {
		dst.NotifyBeforeUnit = src.NotifyBeforeUnit
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	dashboardrender "github.com/bnema/subs-cli/internal/adapters/render/dashboard"
	"github.com/bnema/subs-cli/internal/application"
)

const loadingLabel = "Carregando assinaturas..."

func newDashboardCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ls", "list"},
		Short:   "Show the monthly total, upcoming renewals and every subscription",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dashboard, err := awaitResult(cmd, asJSON, loadingLabel, app.subscriptions.Dashboard)
			if err != nil {
				return err
			}

			return writeDashboardOutput(cmd, app, dashboard, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeDashboardOutput(cmd *cobra.Command, app *app, dashboard application.Dashboard, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), dashboard)
	}

	rendered, err := app.renderDashboard(dashboard, dashboardrender.RenderOptions{})
	if err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}

	if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
		return err
	}

	printSummaryWarnings(cmd.ErrOrStderr(), dashboard.Summary)
	return nil
}

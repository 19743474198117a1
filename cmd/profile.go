package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := awaitResult(cmd, asJSON, "Loading profile...", app.sessions.Profile)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), user)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "name:   %s\nemail:  %s\nmember: %s\n",
				valueOr(user.Name, "-"),
				valueOr(user.Email, "-"),
				valueOr(user.CreatedAt, "-"),
			)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

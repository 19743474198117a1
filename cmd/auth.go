package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/subs-cli/internal/domain"
)

func newLoginCmd(app *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the subscriptions backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := newPrompter(cmd)

			email, err := p.valueOrPrompt(email, "Email: ")
			if err != nil {
				return err
			}
			password, err := p.Password("Password: ")
			if err != nil {
				return err
			}

			if err := app.sessions.SignIn(cmd.Context(), domain.Credentials{Email: email, Password: password}); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Signed in as %s", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted when empty)")

	return cmd
}

func newRegisterCmd(app *app) *cobra.Command {
	var name string
	var email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := newPrompter(cmd)

			name, err := p.valueOrPrompt(name, "Name: ")
			if err != nil {
				return err
			}
			email, err := p.valueOrPrompt(email, "Email: ")
			if err != nil {
				return err
			}
			password, err := p.Password("Password: ")
			if err != nil {
				return err
			}
			confirmation, err := p.Password("Confirm password: ")
			if err != nil {
				return err
			}

			registration := domain.Registration{
				Name:                 name,
				Email:                email,
				Password:             password,
				PasswordConfirmation: confirmation,
			}
			if err := app.sessions.Register(cmd.Context(), registration); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Account created, signed in as %s", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (prompted when empty)")
	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted when empty)")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.sessions.SignOut(cmd.Context()); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := app.sessions.Current(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}

			out := cmd.OutOrStdout()
			if !info.Authenticated() {
				_, err := fmt.Fprintf(out, "Not signed in (server %s)\n", app.config.API.BaseURL)
				return err
			}

			md := info.Metadata
			lines := []string{
				fmt.Sprintf("email:     %s", valueOr(md.Email, "unknown")),
				fmt.Sprintf("server:    %s", valueOr(md.ServerURL, app.config.API.BaseURL)),
				fmt.Sprintf("signed in: %s", formatTimestamp(md.SignedInAt)),
				fmt.Sprintf("expires:   %s", expiryLabel(md, app.now())),
			}
			if md.Subject != "" {
				lines = append(lines, fmt.Sprintf("subject:   %s", md.Subject))
			}
			for _, line := range lines {
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func expiryLabel(md domain.SessionMetadata, now time.Time) string {
	if md.ExpiresAt.IsZero() {
		return "never"
	}
	if md.Expired(now) {
		return formatTimestamp(md.ExpiresAt) + " (expired)"
	}
	return formatTimestamp(md.ExpiresAt)
}

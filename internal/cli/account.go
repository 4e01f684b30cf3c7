package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/favourami/eventplanner/internal/core/ports"
)

func (r *runner) signupCmd() *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Long: `Create an account and its profile. The password is read from the
terminal and must be at least 8 characters.`,
		Args: cobra.NoArgs,
		RunE: r.with(func(cmd *cobra.Command, _ []string, app *App) error {
			w := cmd.OutOrStdout()
			password, err := promptPassword(w, "Password")
			if err != nil {
				return err
			}
			uid, err := app.Accounts.SignUp(cmd.Context(), ports.SignUpInput{Name: name, Email: email, Password: password})
			if err != nil {
				return err
			}
			if r.jsonOut {
				return printJSON(w, map[string]string{"uid": uid})
			}
			fmt.Fprintf(w, "Account created. Log in with: planner login --email %s\n", email)
			return nil
		}),
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func (r *runner) loginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session",
		Args:  cobra.NoArgs,
		RunE: r.with(func(cmd *cobra.Command, _ []string, app *App) error {
			w := cmd.OutOrStdout()
			password, err := promptPassword(w, "Password")
			if err != nil {
				return err
			}
			user, err := app.Accounts.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if r.jsonOut {
				return printJSON(w, user)
			}
			fmt.Fprintf(w, "Welcome, %s!\n", user.FirstName())
			return nil
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func (r *runner) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the session",
		Args:  cobra.NoArgs,
		RunE: r.with(func(cmd *cobra.Command, _ []string, app *App) error {
			app.Accounts.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		}),
	}
}

func (r *runner) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the session user",
		Args:  cobra.NoArgs,
		RunE: r.with(func(cmd *cobra.Command, _ []string, app *App) error {
			w := cmd.OutOrStdout()
			user := app.Accounts.CurrentUser()
			if r.jsonOut {
				return printJSON(w, map[string]any{"user": user, "greeting": user.FirstName()})
			}
			if user == nil {
				fmt.Fprintln(w, "Hello, Guest. Not signed in.")
				return nil
			}
			fmt.Fprintf(w, "Hello, %s. Signed in as %s <%s>.\n", user.FirstName(), user.DisplayName, user.Email)
			return nil
		}),
	}
}

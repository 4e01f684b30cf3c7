package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/favourami/eventplanner/internal/core/validation"
)

// passwordStrengthCmd scores a candidate password. It needs no backend.
func (r *runner) passwordStrengthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "password-strength [password]",
		Short: "Rate a candidate password",
		Long: `Rate a password against length, digit, uppercase, lowercase and
special-character criteria. Without an argument the password is read from
the terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				p, err := promptPassword(w, "Password")
				if err != nil {
					return err
				}
				password = p
			}

			s := validation.PasswordStrength(password)
			ok := validation.IsAcceptablePassword(password)
			if r.jsonOut {
				return printJSON(w, map[string]any{"strength": s.String(), "level": int(s), "acceptable": ok})
			}
			verdict := "acceptable"
			if !ok {
				verdict = fmt.Sprintf("too short, use at least %d characters", validation.MinPasswordLength)
			}
			fmt.Fprintf(w, "Strength: %s (%s)\n", s, verdict)
			return nil
		},
	}
}

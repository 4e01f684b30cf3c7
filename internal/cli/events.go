package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/favourami/eventplanner/internal/core/ports"
	"github.com/favourami/eventplanner/internal/core/service"
)

func (r *runner) eventsCmd() *cobra.Command {
	events := &cobra.Command{
		Use:   "events",
		Short: "List or watch your events",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your events, soonest first",
		Args:  cobra.NoArgs,
		RunE: r.with(func(cmd *cobra.Command, _ []string, app *App) error {
			views, err := app.Events.List(cmd.Context())
			if err != nil {
				return err
			}
			return r.printEvents(cmd.OutOrStdout(), views)
		}),
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Print the event list every time it changes",
		Long: `Follow the live event list of the session user until interrupted.
Every change prints the whole list again.`,
		Args: cobra.NoArgs,
		RunE: r.serving(func(cmd *cobra.Command, _ []string, app *App) error {
			w := cmd.OutOrStdout()
			b := service.NewEventListBinder(app.Docs,
				func(views []ports.EventView) {
					if !r.jsonOut {
						fmt.Fprintf(w, "-- %d event(s) --\n", len(views))
					}
					_ = r.printEvents(w, views)
				},
				func(err error) { fmt.Fprintln(cmd.ErrOrStderr(), service.Notice(err)) },
				app.Log)
			return b.FollowSession(cmd.Context(), app.Session)
		}),
	}

	events.AddCommand(list, watch)
	return events
}

func (r *runner) printEvents(w io.Writer, views []ports.EventView) error {
	if r.jsonOut {
		return printJSON(w, views)
	}
	if len(views) == 0 {
		fmt.Fprintln(w, "No events yet")
		return nil
	}
	tw := newTable(w, "ID", "NAME", "DATE", "TIME", "LOCATION")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Display.Date, v.Display.Time, v.Location)
	}
	return tw.Flush()
}

func (r *runner) guestsCmd() *cobra.Command {
	guests := &cobra.Command{
		Use:   "guests",
		Short: "Manage the guest list of an event",
	}

	var name, email string
	add := &cobra.Command{
		Use:   "add <event-id>",
		Short: "Add a guest to one of your events",
		Args:  cobra.ExactArgs(1),
		RunE: r.with(func(cmd *cobra.Command, args []string, app *App) error {
			id, err := app.Guests.Add(cmd.Context(), args[0], ports.GuestInput{FullName: name, Email: email})
			if err != nil {
				return err
			}
			if r.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]string{"id": id})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", name, id)
			return nil
		}),
	}
	add.Flags().StringVar(&name, "name", "", "guest full name")
	add.Flags().StringVar(&email, "email", "", "guest email address")

	guests.AddCommand(add)
	return guests
}

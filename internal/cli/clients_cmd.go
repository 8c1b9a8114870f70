package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/account"
	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/view"
)

// dayOrToday parses the --day flag; empty means today.
func (a *App) dayOrToday(flag string) (visit.Day, error) {
	if flag == "" {
		return a.Today(), nil
	}
	day, err := visit.ParseDay(flag)
	if err != nil {
		return "", friendly(err, "Unknown day.")
	}
	return day, nil
}

type mountable interface {
	Mount(account.Identity)
	OnChange(func())
	Loading() bool
	Error() string
}

// mountAndWait mounts v and blocks until its first snapshot or failure.
func mountAndWait(ctx context.Context, v mountable, user account.Identity) error {
	changed := make(chan struct{}, 1)
	v.OnChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	v.Mount(user)

	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	for {
		if msg := v.Error(); msg != "" {
			return errors.New(msg)
		}
		if !v.Loading() {
			return nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return fmt.Errorf("waiting for clients: %w", ctx.Err())
		}
	}
}

func newHomeCmd(app *App) *cobra.Command {
	var dayFlag string

	cmd := &cobra.Command{
		Use:   "home",
		Short: "Show the first clients of a day and how many are left",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := app.dayOrToday(dayFlag)
			if err != nil {
				return err
			}
			user, err := app.requireUser(cmd.Context())
			if err != nil {
				return err
			}

			home := view.NewHome(app.Store, day)
			defer home.Close()
			if err := mountAndWait(cmd.Context(), home, user); err != nil {
				return err
			}

			renderHome(cmd.OutOrStdout(), home)
			return nil
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "day of the week (default today)")
	return cmd
}

func renderHome(w io.Writer, home *view.Home) {
	renderHeader(w, home.Day(), home.Summary())
	renderClients(w, home.Preview())
	renderMore(w, home.More())
	renderBanner(w, home.Error())
}

func newListCmd(app *App) *cobra.Command {
	var dayFlag, search, filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every client of a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := app.dayOrToday(dayFlag)
			if err != nil {
				return err
			}
			status, ok := visit.ParseStatus(filter)
			if !ok {
				return fmt.Errorf("invalid filter %q: must be all, visited or unvisited", filter)
			}
			user, err := app.requireUser(cmd.Context())
			if err != nil {
				return err
			}

			list := view.NewFullList(app.Store)
			defer list.Close()
			list.SelectDay(day)
			list.SetSearch(search)
			list.SetFilter(status)
			if err := mountAndWait(cmd.Context(), list, user); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			renderHeader(w, list.Day(), list.Totals())
			renderClients(w, list.Visible())
			renderTotals(w, list.Totals())
			return nil
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "day of the week (default today)")
	cmd.Flags().StringVar(&search, "search", "", "match name or address")
	cmd.Flags().StringVar(&filter, "filter", "all", "all, visited or unvisited")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	var dayFlag string

	cmd := &cobra.Command{
		Use:   "add NAME ADDRESS",
		Short: "Add a client to a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := app.dayOrToday(dayFlag)
			if err != nil {
				return err
			}
			user, err := app.requireUser(cmd.Context())
			if err != nil {
				return err
			}

			data := visit.ClientData{Name: args[0], Address: args[1]}
			if err := app.Store.Add(cmd.Context(), user.UserID, day, data); err != nil {
				return friendly(err, "Could not add the client.")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", args[0], day.Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "day of the week (default today)")
	return cmd
}

func newToggleCmd(app *App) *cobra.Command {
	var dayFlag string

	cmd := &cobra.Command{
		Use:   "toggle ID",
		Short: "Flip a client's visited mark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := app.dayOrToday(dayFlag)
			if err != nil {
				return err
			}
			user, err := app.requireUser(cmd.Context())
			if err != nil {
				return err
			}

			list := view.NewFullList(app.Store)
			defer list.Close()
			list.SelectDay(day)
			if err := mountAndWait(cmd.Context(), list, user); err != nil {
				return err
			}

			c, found := visit.Find(list.Clients(), args[0])
			if err := list.Toggle(cmd.Context(), args[0]); err != nil {
				return errors.New(list.Error())
			}

			state := "visited"
			if found && c.Visited {
				state = "not visited"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s %s\n", c.Name, state)
			return nil
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "day of the week (default today)")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	var dayFlag string

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a client from a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := app.dayOrToday(dayFlag)
			if err != nil {
				return err
			}
			user, err := app.requireUser(cmd.Context())
			if err != nil {
				return err
			}

			if err := app.Store.Delete(cmd.Context(), user.UserID, day, args[0]); err != nil {
				return friendly(err, "Could not delete the client.")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "day of the week (default today)")
	return cmd
}

func newWatchCmd(app *App) *cobra.Command {
	var dayFlag string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the home view open and redraw on every change",
		RunE: func(cmd *cobra.Command, args []string) error {
			router := view.NewRouter(app.Session, app.Store, app.Today)
			defer router.Close()
			return watch(cmd.Context(), router, dayFlag, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "day of the week (default today)")
	return cmd
}

// watch redraws the home page until ctx ends, the session ends or the
// live feed fails.
func watch(ctx context.Context, router *view.Router, dayFlag string, w io.Writer) error {
	changed := make(chan struct{}, 1)
	signal := func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}
	router.OnChange(func(view.Page) { signal() })
	router.Start()

	readyCtx, cancel := context.WithTimeout(ctx, readyTimeout)
	_, err := router.Session().AwaitReady(readyCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("checking session: %w", err)
	}

	var day visit.Day
	if dayFlag != "" {
		if day, err = visit.ParseDay(dayFlag); err != nil {
			return friendly(err, "Unknown day.")
		}
	}

	var current *view.Home
	for {
		if router.Page() != view.PageHome {
			return ErrNotSignedIn
		}
		if home := router.Home(); home != nil && home != current {
			current = home
			home.OnChange(signal)
			if day != "" {
				home.SelectDay(day)
			}
		}

		if current != nil && !current.Loading() {
			clearScreen(w)
			renderHome(w, current)
			if msg := current.Error(); msg != "" {
				return errors.New(msg)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-changed:
		}
	}
}

func clearScreen(w io.Writer) {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(w, "\033[H\033[2J")
		return
	}
	fmt.Fprintln(w)
}

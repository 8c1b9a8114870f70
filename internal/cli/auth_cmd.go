package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/account"
	"github.com/BruksfildServices01/visit-tracker/internal/session"
	"github.com/BruksfildServices01/visit-tracker/internal/view"
)

const readyTimeout = 10 * time.Second

var ErrNotSignedIn = errors.New("not signed in: run `visitctl login` first")

// UserError pairs the message shown to the user with its cause.
type UserError struct {
	Msg string
	Err error
}

func (e *UserError) Error() string { return e.Msg }
func (e *UserError) Unwrap() error { return e.Err }

func friendly(err error, fallback string) error {
	if err == nil {
		return nil
	}
	return &UserError{Msg: view.Message(err, fallback), Err: err}
}

// requireUser starts the session and waits for the stored credentials to
// be checked.
func (a *App) requireUser(ctx context.Context) (account.Identity, error) {
	a.Session.Start()

	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	state, err := a.Session.AwaitReady(ctx)
	if err != nil {
		return account.Identity{}, fmt.Errorf("checking session: %w", err)
	}
	if state != session.Authenticated {
		return account.Identity{}, ErrNotSignedIn
	}
	return *a.Session.Identity(), nil
}

func newSignUpCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

			var err error
			if email == "" {
				if email, err = p.line("Email"); err != nil {
					return err
				}
			}
			password, err := p.password("Password")
			if err != nil {
				return err
			}
			confirm, err := p.password("Confirm password")
			if err != nil {
				return err
			}

			if err := app.Session.SignUp(cmd.Context(), email, password, confirm); err != nil {
				return friendly(err, "Sign up failed. Please try again.")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed up as %s\n", account.NormalizeEmail(email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

			var err error
			if email == "" {
				if email, err = p.line("Email"); err != nil {
					return err
				}
			}
			password, err := p.password("Password")
			if err != nil {
				return err
			}

			if err := app.Session.SignIn(cmd.Context(), email, password); err != nil {
				return friendly(err, "Sign in failed. Please try again.")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", account.NormalizeEmail(email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.SignOut(cmd.Context()); err != nil {
				return friendly(err, "Sign out failed.")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.requireUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", id.Email, id.UserID)
			return nil
		},
	}
}

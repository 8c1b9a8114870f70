// Package cli implements visitctl, the terminal front end of the tracker.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/visit-tracker/internal/apiclient"
	"github.com/BruksfildServices01/visit-tracker/internal/config"
	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/logging"
	"github.com/BruksfildServices01/visit-tracker/internal/session"
	"github.com/BruksfildServices01/visit-tracker/internal/timezone"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	APIURL    string
	TokenFile string
	Timezone  string
	Verbose   bool
}

// App is built once flags are parsed and shared by every command.
type App struct {
	Logger  logging.Logger
	Tokens  *apiclient.FileTokenStore
	Auth    *apiclient.AuthClient
	Store   *apiclient.ClientStore
	Session *session.Controller

	timezone string
}

func newApp(opts *RootOptions, stderr io.Writer) *App {
	logger := logging.Discard()
	if opts.Verbose {
		logger = logging.NewText(stderr, slog.LevelDebug)
	}

	tokens := apiclient.NewFileTokenStore(opts.TokenFile)
	api := apiclient.New(opts.APIURL, tokens, logger)
	auth := apiclient.NewAuthClient(api)

	return &App{
		Logger:   logger,
		Tokens:   tokens,
		Auth:     auth,
		Store:    apiclient.NewClientStore(api),
		Session:  session.NewController(auth),
		timezone: opts.Timezone,
	}
}

// Today is the current day of the week in the configured zone.
func (a *App) Today() visit.Day {
	return timezone.Today(a.timezone)
}

// NewRootCommand creates the visitctl command tree. Flags default to cfg.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	opts := &RootOptions{}
	app := &App{}

	cmd := &cobra.Command{
		Use:           "visitctl",
		Short:         "Track which clients you visited today",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			*app = *newApp(opts, cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Session != nil {
				app.Session.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.APIURL, "api", cfg.APIURL, "API base URL")
	cmd.PersistentFlags().StringVar(&opts.TokenFile, "token-file", cfg.TokenFile, "where the session token is kept")
	cmd.PersistentFlags().StringVar(&opts.Timezone, "timezone", cfg.Timezone, "time zone used to pick today")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log requests to stderr")

	cmd.AddCommand(
		newSignUpCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoAmICmd(app),
		newHomeCmd(app),
		newListCmd(app),
		newAddCmd(app),
		newToggleCmd(app),
		newDeleteCmd(app),
		newWatchCmd(app),
	)

	return cmd
}

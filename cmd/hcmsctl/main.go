package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/hcms-backend-go/internal/client"
	"github.com/cmlabs-hris/hcms-backend-go/internal/config"
	"github.com/spf13/cobra"
)

const appVersion = "0.1.0"

// app is the state shared by every subcommand. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	apiURL      string
	sessionFile string
	token       string
	jsonOut     bool
	verbose     bool

	cfg      *config.ClientConfig
	sessions *client.SessionStore
	session  client.Session
	api      *client.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "hcmsctl",
		Short:         "Command line client for the HCMS shift and attendance group API",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.apiURL, "api-url", "", "API base URL (default $HCMS_API_URL)")
	pf.StringVar(&a.sessionFile, "session-file", "", "session file (default $HCMS_SESSION_FILE)")
	pf.StringVar(&a.token, "token", os.Getenv("HCMS_TOKEN"), "bearer token, overrides the stored session")
	pf.BoolVar(&a.jsonOut, "json", false, "print JSON instead of tables")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newShiftsCmd(a),
		newGroupsCmd(a),
		newUsersCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.BaseURL = a.apiURL
	}
	if a.sessionFile != "" {
		cfg.SessionFile = a.sessionFile
	}
	a.cfg = cfg

	a.sessions = client.NewSessionStore(cfg.SessionFile)
	a.session, err = a.sessions.Load()
	if err != nil {
		slog.Warn("Ignoring unreadable session file", "path", cfg.SessionFile, "error", err)
		a.session = client.Session{}
	}

	token := a.token
	if token == "" {
		token = a.session.Token
	}
	a.api = client.New(cfg.BaseURL, cfg.Timeout,
		client.WithToken(token),
		client.WithUnauthorizedHandler(func() {
			if err := a.sessions.ClearToken(); err != nil {
				slog.Warn("Failed to clear stored token", "error", err)
			}
			slog.Debug("Session expired, stored token cleared")
		}),
	)
	slog.Debug("Client configured", "base_url", cfg.BaseURL, "session_file", cfg.SessionFile, "authenticated", token != "")
	return nil
}

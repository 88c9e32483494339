package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var (
		email    string
		password string
		remember bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: `Sign in with email and password. The email is always remembered. The token is
written to the session file only with --remember; otherwise it is printed so it
can be exported as HCMS_TOKEN.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = a.session.Email
			}
			if strings.TrimSpace(email) == "" {
				return errors.New("--email is required")
			}
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			resp, err := a.api.Login(cmd.Context(), email, password, remember)
			if err != nil {
				return err
			}

			a.session.Email = strings.ToLower(strings.TrimSpace(email))
			a.session.RememberMe = remember
			a.session.Token = resp.Token
			if err := a.sessions.Save(a.session); err != nil {
				slog.Warn("Failed to save session", "path", a.sessions.Path(), "error", err)
			}

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, resp)
			}
			fmt.Fprintf(out, "Logged in as %s\n", fullName(resp.User.FirstName, resp.User.LastName))
			if !remember {
				fmt.Fprintf(out, "Token (not stored): %s\n", resp.Token)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (default: remembered email)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (read from stdin when empty)")
	cmd.Flags().BoolVar(&remember, "remember", false, "keep the token in the session file")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the current token and forget it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.api.Logout(cmd.Context())
			if cerr := a.sessions.ClearToken(); cerr != nil {
				slog.Warn("Failed to clear stored token", "error", cerr)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.api.Me(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), me)
			}
			return printTable(cmd.OutOrStdout(),
				[]string{"ID", "EMAIL", "NAME", "ROLES"},
				[][]string{{fmt.Sprint(me.ID), me.Email, fullName(me.FirstName, me.LastName), strings.Join(me.Roles, ",")}},
			)
		},
	}
}

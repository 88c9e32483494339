package main

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hcms-backend-go/internal/client"
	"github.com/spf13/cobra"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Browse users",
	}

	var params client.ListParams
	list := &cobra.Command{
		Use:   "list",
		Short: "List users (requires HR_ADMIN or ADMIN)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.api.ListUsers(cmd.Context(), params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, p)
			}
			rows := make([][]string, 0, len(p.Content))
			for _, u := range p.Content {
				rows = append(rows, []string{
					fmt.Sprint(u.ID),
					u.Email,
					fullName(u.FirstName, u.LastName),
					strings.Join(u.Roles, ","),
					string(u.Status),
					idOrDash(u.AttendanceGroupID),
				})
			}
			if err := printTable(out, []string{"ID", "EMAIL", "NAME", "ROLES", "STATUS", "GROUP"}, rows); err != nil {
				return err
			}
			printPagination(out, pageInfo(p), len(p.Content))
			return nil
		},
	}
	addListFlags(list, &params)
	cmd.AddCommand(list)
	return cmd
}

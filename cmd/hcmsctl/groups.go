package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hcms-backend-go/internal/client"
	"github.com/cmlabs-hris/hcms-backend-go/internal/client/form"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/attendancegroup"
	"github.com/spf13/cobra"
)

func newGroupsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group", "attendance-groups"},
		Short:   "Manage attendance groups",
	}
	cmd.AddCommand(
		newGroupsListCmd(a),
		newGroupsGetCmd(a),
		newGroupsScheduleCmd(a),
		newGroupsCreateCmd(a),
		newGroupsEditCmd(a),
		newGroupsDeleteCmd(a),
	)
	return cmd
}

func newGroupsListCmd(a *app) *cobra.Command {
	var params client.ListParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List attendance groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.api.ListGroups(cmd.Context(), params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, p)
			}
			rows := make([][]string, 0, len(p.Content))
			for _, g := range p.Content {
				rows = append(rows, []string{
					fmt.Sprint(g.ID),
					g.Name,
					g.ShiftTypeLabel,
					orDash(g.DefaultShiftName),
					orDash(g.DefaultShiftTime),
					g.Timezone,
				})
			}
			if err := printTable(out, []string{"ID", "NAME", "TYPE", "DEFAULT SHIFT", "TIME", "TIMEZONE"}, rows); err != nil {
				return err
			}
			printPagination(out, pageInfo(p), len(p.Content))
			return nil
		},
	}
	addListFlags(cmd, &params)
	return cmd
}

func newGroupsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one attendance group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			g, err := a.api.GetGroup(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printGroup(cmd, a, g)
		},
	}
}

func printGroup(cmd *cobra.Command, a *app, g attendancegroup.AttendanceGroupResponse) error {
	out := cmd.OutOrStdout()
	if a.jsonOut {
		return printJSON(out, g)
	}
	rows := [][]string{
		{"id", fmt.Sprint(g.ID)},
		{"name", g.Name},
		{"timezone", g.Timezone},
		{"shiftType", string(g.ShiftType)},
		{"defaultShift", idOrDash(g.DefaultShiftID) + " " + orDash(g.DefaultShiftName)},
	}
	for _, d := range attendancegroup.Weekdays {
		rows = append(rows, []string{strings.ToLower(d.String()), idOrDash(g.WeeklyShiftIDs.Get(d))})
	}
	return printTable(out, []string{"FIELD", "VALUE"}, rows)
}

func newGroupsScheduleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <id>",
		Short: "Show the resolved weekly schedule of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			week, err := a.api.GetWeeklySchedule(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, week)
			}
			rows := make([][]string, 0, len(week.Days))
			for _, day := range week.Days {
				note := ""
				if day.Ambiguous {
					note = "off or default " + idOrDash(week.DefaultShiftID)
				}
				rows = append(rows, []string{day.Day.String(), idOrDash(day.ShiftID), string(day.Source), note})
			}
			return printTable(out, []string{"DAY", "SHIFT", "SOURCE", "NOTE"}, rows)
		},
	}
}

// groupFlags edits the name, default shift and weekly schedule of a group form.
type groupFlags struct {
	name         string
	defaultShift int64
	days         map[string]int64
	on           []string
	off          []string
}

func (gf *groupFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&gf.name, "name", "n", "", "group name")
	fl.Int64Var(&gf.defaultShift, "default-shift", 0, "default shift id (0 clears it)")
	fl.StringToInt64Var(&gf.days, "day", nil, "assign a shift to a day and enable it, e.g. monday=5")
	fl.StringSliceVar(&gf.on, "on", nil, "enable days")
	fl.StringSliceVar(&gf.off, "off", nil, "disable days; their shift is kept until submit")
}

func (gf *groupFlags) apply(cmd *cobra.Command, f *form.GroupForm) error {
	fl := cmd.Flags()
	if fl.Changed("name") {
		f.Name = gf.name
	}
	if fl.Changed("default-shift") {
		f.DefaultShiftID = nil
		if gf.defaultShift > 0 {
			id := gf.defaultShift
			f.DefaultShiftID = &id
		}
	}
	for name, id := range gf.days {
		d, err := attendancegroup.ParseWeekday(name)
		if err != nil {
			return err
		}
		if id <= 0 {
			f.SetDayShift(d, nil)
			continue
		}
		shiftID := id
		f.SetDayShift(d, &shiftID)
		f.Toggle(d, true)
	}
	for _, name := range gf.on {
		d, err := attendancegroup.ParseWeekday(name)
		if err != nil {
			return err
		}
		f.Toggle(d, true)
	}
	for _, name := range gf.off {
		d, err := attendancegroup.ParseWeekday(name)
		if err != nil {
			return err
		}
		f.Toggle(d, false)
	}
	return nil
}

// warnUnknownShifts logs day assignments that point at shifts the editor did not
// load. The server has the final say.
func warnUnknownShifts(editor client.GroupEditor) {
	known := make(map[int64]bool, len(editor.Shifts))
	for _, s := range editor.Shifts {
		known[s.ID] = true
	}
	ids := editor.Form.Schedule.ShiftIDs()
	for _, d := range attendancegroup.Weekdays {
		if id := ids.Get(d); id != nil && !known[*id] {
			slog.Warn("Shift not found among active shifts", "day", d.String(), "shift_id", *id)
		}
	}
}

func newGroupsCreateCmd(a *app) *cobra.Command {
	var gf groupFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an attendance group (Monday to Friday enabled by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, err := a.api.LoadGroupEditor(cmd.Context(), 0)
			if err != nil {
				return err
			}
			if err := gf.apply(cmd, &editor.Form); err != nil {
				return err
			}
			if !editor.Form.CanSubmit() {
				return errors.New("--name is required")
			}
			warnUnknownShifts(editor)
			g, err := a.api.CreateGroup(cmd.Context(), editor.Form.CreateRequest())
			if err != nil {
				return err
			}
			return printGroup(cmd, a, g)
		},
	}
	gf.register(cmd)
	return cmd
}

func newGroupsEditCmd(a *app) *cobra.Command {
	var gf groupFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit the name, default shift or weekly schedule of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			editor, err := a.api.LoadGroupEditor(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := gf.apply(cmd, &editor.Form); err != nil {
				return err
			}
			if !editor.Form.CanSubmit() {
				return errors.New("name must not be blank")
			}
			warnUnknownShifts(editor)
			g, err := a.api.UpdateGroup(cmd.Context(), editor.Form.UpdateRequest())
			if err != nil {
				return err
			}
			return printGroup(cmd, a, g)
		},
	}
	gf.register(cmd)
	return cmd
}

func newGroupsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an attendance group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.api.DeleteGroup(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Successfully deleted attendance group")
			return nil
		},
	}
}

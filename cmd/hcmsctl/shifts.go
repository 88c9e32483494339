package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hcms-backend-go/internal/client"
	"github.com/cmlabs-hris/hcms-backend-go/internal/client/form"
	"github.com/cmlabs-hris/hcms-backend-go/internal/client/store"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/spf13/cobra"
)

func newShiftsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shifts",
		Aliases: []string{"shift"},
		Short:   "Manage shifts",
	}
	cmd.AddCommand(
		newShiftsListCmd(a),
		newShiftsGetCmd(a),
		newShiftsCreateCmd(a),
		newShiftsUpdateCmd(a),
		newShiftsDeleteCmd(a),
		newShiftsPreviewCmd(a),
		newShiftsSearchCmd(a),
	)
	return cmd
}

func addListFlags(cmd *cobra.Command, p *client.ListParams) {
	cmd.Flags().StringVarP(&p.Search, "search", "s", "", "search text")
	cmd.Flags().StringVar(&p.Status, "status", "", "status filter")
	cmd.Flags().IntVar(&p.Page, "page", 0, "zero-based page")
	cmd.Flags().IntVar(&p.Size, "size", 0, "page size (server default 20, max 100)")
	cmd.Flags().StringVar(&p.Sort, "sort", "", "sort as field,asc|desc")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func shiftRows(items []shift.ShiftResponse) [][]string {
	rows := make([][]string, 0, len(items))
	for _, s := range items {
		rows = append(rows, []string{
			fmt.Sprint(s.ID),
			orDash(s.Code),
			s.Name,
			string(s.ShiftType),
			s.StartTime + "-" + s.EndTime + nextDayMark(s.IsNextDayEnd),
			minutesLabel(s.WorkingHoursMinutes),
			string(s.Status),
		})
	}
	return rows
}

var shiftHeader = []string{"ID", "CODE", "NAME", "TYPE", "TIME", "WORKING", "STATUS"}

func nextDayMark(next bool) string {
	if next {
		return " (+1)"
	}
	return ""
}

func newShiftsListCmd(a *app) *cobra.Command {
	var params client.ListParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shifts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.api.ListShifts(cmd.Context(), params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, p)
			}
			if err := printTable(out, shiftHeader, shiftRows(p.Content)); err != nil {
				return err
			}
			printPagination(out, pageInfo(p), len(p.Content))
			return nil
		},
	}
	addListFlags(cmd, &params)
	return cmd
}

func newShiftsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := a.api.GetShift(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printShift(cmd, a, s)
		},
	}
}

func printShift(cmd *cobra.Command, a *app, s shift.ShiftResponse) error {
	out := cmd.OutOrStdout()
	if a.jsonOut {
		return printJSON(out, s)
	}
	f := form.ShiftFormFrom(s)
	rows := [][]string{
		{"id", fmt.Sprint(s.ID)},
		{"code", orDash(s.Code)},
		{"name", s.Name},
		{"description", orDash(s.Description)},
		{"shiftType", string(s.ShiftType)},
		{"dateType", string(s.DateType)},
		{"time", s.StartTime + "-" + s.EndTime + nextDayMark(s.IsNextDayEnd)},
		{"requireClockIn", strconv.FormatBool(s.RequireClockIn)},
		{"requireClockOut", strconv.FormatBool(s.RequireClockOut)},
		{"hasBreaks", strconv.FormatBool(s.HasBreaks)},
	}
	for _, field := range form.IntFields {
		rows = append(rows, []string{string(field), strconv.Itoa(f.Int(field))})
	}
	rows = append(rows,
		[]string{"workingHours", minutesLabel(s.WorkingHoursMinutes)},
		[]string{"status", string(s.Status)},
	)
	return printTable(out, []string{"FIELD", "VALUE"}, rows)
}

// shiftFlags binds the editable shift rules. Only flags set on the command line
// are applied, so update keeps every other stored value.
type shiftFlags struct {
	name        string
	code        string
	description string
	shiftType   string
	dateType    string
	start       string
	end         string
	nextDay     bool
	clockIn     bool
	clockOut    bool
	hasBreaks   bool
	ints        map[string]int
}

func (sf *shiftFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&sf.name, "name", "n", "", "shift name")
	fl.StringVar(&sf.code, "code", "", "unique shift code")
	fl.StringVar(&sf.description, "description", "", "description")
	fl.StringVar(&sf.shiftType, "type", "", "FIXED_TIME or FLEXTIME")
	fl.StringVar(&sf.dateType, "date-type", "", "WORK_DAYS or OFF_DAYS")
	fl.StringVar(&sf.start, "start", "", "start time HH:mm")
	fl.StringVar(&sf.end, "end", "", "end time HH:mm")
	fl.BoolVar(&sf.nextDay, "next-day", false, "end time falls on the next day")
	fl.BoolVar(&sf.clockIn, "require-clock-in", true, "require clock in")
	fl.BoolVar(&sf.clockOut, "require-clock-out", true, "require clock out")
	fl.BoolVar(&sf.hasBreaks, "breaks", false, "subtract the break duration")
	fl.StringToIntVar(&sf.ints, "set", nil, "numeric rules as field=value, e.g. breakDurationMinutes=60")
}

func (sf *shiftFlags) apply(cmd *cobra.Command, f *form.ShiftForm) error {
	fl := cmd.Flags()
	d := &f.Draft
	if fl.Changed("name") {
		d.Name = sf.name
	}
	if fl.Changed("code") {
		d.Code = optional(sf.code)
	}
	if fl.Changed("description") {
		d.Description = optional(sf.description)
	}
	if fl.Changed("type") {
		d.ShiftType = shift.ShiftType(strings.ToUpper(sf.shiftType))
	}
	if fl.Changed("date-type") {
		d.DateType = shift.DateType(strings.ToUpper(sf.dateType))
	}
	if fl.Changed("start") {
		d.StartTime = sf.start
	}
	if fl.Changed("end") {
		d.EndTime = sf.end
	}
	if fl.Changed("next-day") {
		d.IsNextDayEnd = sf.nextDay
	}
	if fl.Changed("require-clock-in") {
		d.RequireClockIn = sf.clockIn
	}
	if fl.Changed("require-clock-out") {
		d.RequireClockOut = sf.clockOut
	}
	if fl.Changed("breaks") {
		d.HasBreaks = sf.hasBreaks
	}

	keys := make([]string, 0, len(sf.ints))
	for k := range sf.ints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := sf.ints[k]
		stored, ok := f.SetInt(form.IntField(k), v)
		if !ok {
			return fmt.Errorf("unknown numeric field %q", k)
		}
		if stored != v {
			slog.Warn("Value clamped to allowed range", "field", k, "requested", v, "stored", stored)
		}
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func newShiftsCreateCmd(a *app) *cobra.Command {
	var sf shiftFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a shift from the default rule set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := form.NewShiftForm()
			if err := sf.apply(cmd, &f); err != nil {
				return err
			}
			if !f.CanSubmit() {
				return errors.New("--name is required")
			}
			s, err := a.api.CreateShift(cmd.Context(), f.CreateRequest())
			if err != nil {
				return err
			}
			return printShift(cmd, a, s)
		},
	}
	sf.register(cmd)
	return cmd
}

func newShiftsUpdateCmd(a *app) *cobra.Command {
	var sf shiftFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a shift; unset flags keep their stored values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.api.GetShift(cmd.Context(), id)
			if err != nil {
				return err
			}
			f := form.ShiftFormFrom(current)
			if err := sf.apply(cmd, &f); err != nil {
				return err
			}
			if !f.CanSubmit() {
				return errors.New("name must not be blank")
			}
			s, err := a.api.UpdateShift(cmd.Context(), f.UpdateRequest())
			if err != nil {
				return err
			}
			return printShift(cmd, a, s)
		},
	}
	sf.register(cmd)
	return cmd
}

func newShiftsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.api.DeleteShift(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Successfully deleted shift")
			return nil
		},
	}
}

func newShiftsPreviewCmd(a *app) *cobra.Command {
	var sf shiftFlags
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Compute working hours locally without calling the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := form.NewShiftForm()
			if err := sf.apply(cmd, &f); err != nil {
				return err
			}
			wh, err := f.Preview()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, wh)
			}
			fmt.Fprintln(out, wh.String())
			if wh.Clamped {
				fmt.Fprintln(out, "break exceeds the shift window, working time clamped to zero")
			}
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}

func newShiftsSearchCmd(a *app) *cobra.Command {
	var delay time.Duration
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search shifts; without a query, every stdin line is a new search",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			st := store.New(ctx, store.Initial())
			searcher := client.NewSearcher(a.api, st, delay)
			defer searcher.Stop()

			if len(args) > 0 {
				gen := searcher.Shifts(ctx, strings.Join(args, " "))
				s, err := waitForShifts(ctx, st, gen)
				if err != nil {
					return err
				}
				return printShiftList(cmd, a, s)
			}

			sub, unsubscribe := st.Subscribe()
			printed := make(chan struct{})
			go func() {
				defer close(printed)
				var last uint64
				for s := range sub {
					if s.Shifts.Loading || s.Shifts.Generation == last {
						continue
					}
					last = s.Shifts.Generation
					if err := printShiftList(cmd, a, s); err != nil {
						slog.Error("Failed to print results", "error", err)
					}
				}
			}()

			var gen uint64
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				gen = searcher.Shifts(ctx, strings.TrimSpace(scanner.Text()))
			}
			if gen > 0 {
				if _, err := waitForShifts(ctx, st, gen); err != nil {
					unsubscribe()
					<-printed
					return err
				}
			}
			unsubscribe()
			<-printed
			return scanner.Err()
		},
	}
	cmd.Flags().DurationVar(&delay, "debounce", client.DefaultDebounceDelay, "wait after the last keystroke before searching")
	return cmd
}

// waitForShifts blocks until the load tagged gen has finished.
func waitForShifts(ctx context.Context, st *store.Store, gen uint64) (store.State, error) {
	sub, unsubscribe := st.Subscribe()
	defer unsubscribe()
	for {
		select {
		case s, ok := <-sub:
			if !ok {
				return store.State{}, errors.New("store stopped")
			}
			if s.Shifts.Generation == gen && !s.Shifts.Loading {
				return s, nil
			}
		case <-ctx.Done():
			return store.State{}, ctx.Err()
		}
	}
}

func printShiftList(cmd *cobra.Command, a *app, s store.State) error {
	out := cmd.OutOrStdout()
	if s.Err != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", s.Err)
		return nil
	}
	if a.jsonOut {
		return printJSON(out, s.Shifts.Items)
	}
	fmt.Fprintf(out, "Results for %q\n", s.Shifts.Search)
	if err := printTable(out, shiftHeader, shiftRows(s.Shifts.Items)); err != nil {
		return err
	}
	printPagination(out, s.Shifts.Pagination, len(s.Shifts.Items))
	return nil
}

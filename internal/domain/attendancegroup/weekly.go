package attendancegroup

import (
	"fmt"
	"strings"
	"time"
)

type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Weekdays lists the days in display order, Monday first.
var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = [7]string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

func (d Weekday) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Weekday) UnmarshalText(b []byte) error {
	parsed, err := ParseWeekday(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseWeekday accepts full day names in any case, e.g. "saturday".
func ParseWeekday(s string) (Weekday, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range weekdayNames {
		if name == upper {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// FromTime maps a time.Weekday onto the Monday-first Weekday.
func FromTime(d time.Weekday) Weekday {
	return Weekday((int(d) + 6) % 7)
}

// WeeklyShiftIDs holds the per-day shift overrides as sent on the wire. A nil id
// is serialized as null.
type WeeklyShiftIDs struct {
	Monday    *int64 `json:"mondayShiftId"`
	Tuesday   *int64 `json:"tuesdayShiftId"`
	Wednesday *int64 `json:"wednesdayShiftId"`
	Thursday  *int64 `json:"thursdayShiftId"`
	Friday    *int64 `json:"fridayShiftId"`
	Saturday  *int64 `json:"saturdayShiftId"`
	Sunday    *int64 `json:"sundayShiftId"`
}

func (w *WeeklyShiftIDs) slot(d Weekday) **int64 {
	switch d {
	case Monday:
		return &w.Monday
	case Tuesday:
		return &w.Tuesday
	case Wednesday:
		return &w.Wednesday
	case Thursday:
		return &w.Thursday
	case Friday:
		return &w.Friday
	case Saturday:
		return &w.Saturday
	case Sunday:
		return &w.Sunday
	}
	panic(fmt.Sprintf("attendancegroup: invalid weekday %d", int(d)))
}

func (w WeeklyShiftIDs) Get(d Weekday) *int64 {
	return *w.slot(d)
}

func (w *WeeklyShiftIDs) Set(d Weekday, id *int64) {
	*w.slot(d) = id
}

// IDs returns the distinct non-nil shift ids referenced by the week.
func (w WeeklyShiftIDs) IDs() []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, d := range Weekdays {
		if id := w.Get(d); id != nil && !seen[*id] {
			seen[*id] = true
			ids = append(ids, *id)
		}
	}
	return ids
}

// DaySchedule is the editable state of one weekday. Enabled and ShiftID are
// independent: disabling a day keeps its ShiftID until the schedule is submitted.
type DaySchedule struct {
	Enabled bool
	ShiftID *int64
}

// WeeklySchedule is the editable week, indexed by Weekday.
type WeeklySchedule [7]DaySchedule

// DefaultWeeklySchedule is the schedule of a new group: Monday to Friday enabled,
// the weekend disabled, and no shift chosen for any day.
func DefaultWeeklySchedule() WeeklySchedule {
	var w WeeklySchedule
	for _, d := range Weekdays {
		w[d].Enabled = d < Saturday
	}
	return w
}

// LoadWeeklySchedule derives the editable week from stored overrides. A day is
// enabled only when it carries a shift id, so a workday that defers to the group
// default loads as disabled.
func LoadWeeklySchedule(ids WeeklyShiftIDs) WeeklySchedule {
	var w WeeklySchedule
	for _, d := range Weekdays {
		id := ids.Get(d)
		if id != nil && *id != 0 {
			v := *id
			w[d] = DaySchedule{Enabled: true, ShiftID: &v}
		}
	}
	return w
}

func (w *WeeklySchedule) SetEnabled(d Weekday, enabled bool) {
	w[d].Enabled = enabled
}

func (w *WeeklySchedule) SetShift(d Weekday, id *int64) {
	if id == nil {
		w[d].ShiftID = nil
		return
	}
	v := *id
	w[d].ShiftID = &v
}

// ShiftIDs normalizes the week for submission: an enabled day sends its shift id
// (nil defers to the group default), a disabled day always sends nil.
func (w WeeklySchedule) ShiftIDs() WeeklyShiftIDs {
	var ids WeeklyShiftIDs
	for _, d := range Weekdays {
		day := w[d]
		if day.Enabled && day.ShiftID != nil {
			v := *day.ShiftID
			ids.Set(d, &v)
		}
	}
	return ids
}

// EnabledDays returns the enabled weekdays in order.
func (w WeeklySchedule) EnabledDays() []Weekday {
	var days []Weekday
	for _, d := range Weekdays {
		if w[d].Enabled {
			days = append(days, d)
		}
	}
	return days
}

type DaySource string

const (
	// SourceOverride marks a day with an explicit shift id.
	SourceOverride DaySource = "OVERRIDE"
	// SourceUnspecified marks a null day. Stored data cannot tell a day off from a
	// day that defers to the group default.
	SourceUnspecified DaySource = "UNSPECIFIED"
)

type DayAssignment struct {
	Day     Weekday   `json:"day"`
	ShiftID *int64    `json:"shiftId"`
	Source  DaySource `json:"source"`
	// Ambiguous is set for unspecified days of a group that has a default shift:
	// the day is either off or uses the default, and nothing recorded says which.
	Ambiguous bool `json:"ambiguous"`
}

type ResolvedWeek struct {
	DefaultShiftID *int64          `json:"defaultShiftId"`
	Days           []DayAssignment `json:"days"`
}

// Resolve reports the stored assignment of every weekday. Null days are reported
// as unspecified and never replaced by the default shift.
func Resolve(ids WeeklyShiftIDs, defaultShiftID *int64) ResolvedWeek {
	week := ResolvedWeek{
		DefaultShiftID: defaultShiftID,
		Days:           make([]DayAssignment, 0, len(Weekdays)),
	}
	for _, d := range Weekdays {
		a := DayAssignment{Day: d, Source: SourceUnspecified}
		if id := ids.Get(d); id != nil {
			v := *id
			a.ShiftID = &v
			a.Source = SourceOverride
		} else {
			a.Ambiguous = defaultShiftID != nil
		}
		week.Days = append(week.Days, a)
	}
	return week
}

// AmbiguousDays lists the days whose meaning cannot be determined.
func (r ResolvedWeek) AmbiguousDays() []Weekday {
	var days []Weekday
	for _, a := range r.Days {
		if a.Ambiguous {
			days = append(days, a.Day)
		}
	}
	return days
}

package shift

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of one calendar day in minutes.
const MinutesPerDay = 24 * 60

// ParseClock converts a 24h "HH:mm" wall-clock value into minutes since midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || !twoDigits(hh) || !twoDigits(mm) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

func twoDigits(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}

// FormatClock renders minutes since midnight as "HH:mm", wrapping past midnight.
func FormatClock(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ElapsedMinutes returns the minutes between start and end. A same-day window whose
// end precedes its start yields 0; a next-day window always spans midnight.
func ElapsedMinutes(start, end int, nextDayEnd bool) int {
	if nextDayEnd {
		return (MinutesPerDay - start) + end
	}
	if end < start {
		return 0
	}
	return end - start
}

// BreakPolicy resolves a net working duration that breaks have pushed below zero.
// It returns the minutes to report and whether the value was adjusted.
type BreakPolicy func(net int) (minutes int, adjusted bool)

// ClampToZero reports over-subtracted breaks as zero working minutes.
func ClampToZero(net int) (int, bool) {
	if net < 0 {
		return 0, true
	}
	return net, false
}

// Window is a parsed shift time window.
type Window struct {
	Start        int
	End          int
	NextDayEnd   bool
	HasBreaks    bool
	BreakMinutes int
}

// NewWindow parses the wall-clock bounds of a shift.
func NewWindow(startTime, endTime string, nextDayEnd, hasBreaks bool, breakMinutes int) (Window, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return Window{}, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return Window{}, err
	}
	return Window{
		Start:        start,
		End:          end,
		NextDayEnd:   nextDayEnd,
		HasBreaks:    hasBreaks,
		BreakMinutes: breakMinutes,
	}, nil
}

// WorkingHours is the net working time of a window.
type WorkingHours struct {
	TotalMinutes int `json:"totalMinutes"`
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
	// Clamped is set when breaks exceeded the window and the policy adjusted the total.
	Clamped bool `json:"clamped"`
}

func (h WorkingHours) String() string {
	return fmt.Sprintf("%dh %dm", h.Hours, h.Minutes)
}

// WorkingHours computes net working time using ClampToZero.
func (w Window) WorkingHours() WorkingHours {
	return w.WorkingHoursWith(ClampToZero)
}

// WorkingHoursWith computes net working time, resolving break overruns with policy.
func (w Window) WorkingHoursWith(policy BreakPolicy) WorkingHours {
	net := ElapsedMinutes(w.Start, w.End, w.NextDayEnd)
	if w.HasBreaks {
		net -= w.BreakMinutes
	}

	total, clamped := policy(net)
	return WorkingHours{
		TotalMinutes: total,
		Hours:        total / 60,
		Minutes:      total % 60,
		Clamped:      clamped,
	}
}

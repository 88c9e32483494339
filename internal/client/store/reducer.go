package store

import (
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/attendancegroup"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
)

// Action is a typed state change.
type Action interface {
	isAction()
}

// ShiftsRequested starts a shift load. Results carrying an older generation are
// dropped.
type ShiftsRequested struct {
	Search     string
	Generation uint64
}

type ShiftsLoaded struct {
	Page       page.Page[shift.ShiftResponse]
	Generation uint64
}

type ShiftsFailed struct {
	Err        error
	Generation uint64
}

type ShiftSelected struct {
	Shift *shift.ShiftResponse
}

type ShiftCreated struct {
	Shift shift.ShiftResponse
}

type ShiftUpdated struct {
	Shift shift.ShiftResponse
}

type ShiftDeleted struct {
	ID int64
}

type GroupsRequested struct {
	Search     string
	Generation uint64
}

type GroupsLoaded struct {
	Page       page.Page[attendancegroup.AttendanceGroupResponse]
	Generation uint64
}

type GroupsFailed struct {
	Err        error
	Generation uint64
}

type GroupDeleted struct {
	ID int64
}

type ErrorCleared struct{}

func (ShiftsRequested) isAction() {}
func (ShiftsLoaded) isAction()    {}
func (ShiftsFailed) isAction()    {}
func (ShiftSelected) isAction()   {}
func (ShiftCreated) isAction()    {}
func (ShiftUpdated) isAction()    {}
func (ShiftDeleted) isAction()    {}
func (GroupsRequested) isAction() {}
func (GroupsLoaded) isAction()    {}
func (GroupsFailed) isAction()    {}
func (GroupDeleted) isAction()    {}
func (ErrorCleared) isAction()    {}

// Reduce returns the state after a. It never modifies s: slices are copied
// before they change.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case ShiftsRequested:
		s.Shifts = requested(s.Shifts, a.Search, a.Generation)
		s.Err = ""
	case ShiftsLoaded:
		if a.Generation != s.Shifts.Generation {
			return s
		}
		s.Shifts = loaded(s.Shifts, a.Page)
	case ShiftsFailed:
		if a.Generation != s.Shifts.Generation {
			return s
		}
		s.Shifts.Loading = false
		s.Err = errString(a.Err, "Failed to load shifts")

	case ShiftSelected:
		s.SelectedShift = copyShift(a.Shift)
	case ShiftCreated:
		items := make([]shift.ShiftResponse, 0, len(s.Shifts.Items)+1)
		items = append(items, a.Shift)
		s.Shifts.Items = append(items, s.Shifts.Items...)
	case ShiftUpdated:
		items := make([]shift.ShiftResponse, len(s.Shifts.Items))
		for i, item := range s.Shifts.Items {
			if item.ID == a.Shift.ID {
				item = a.Shift
			}
			items[i] = item
		}
		s.Shifts.Items = items
		if s.SelectedShift != nil && s.SelectedShift.ID == a.Shift.ID {
			s.SelectedShift = copyShift(&a.Shift)
		}
	case ShiftDeleted:
		s.Shifts.Items = without(s.Shifts.Items, func(item shift.ShiftResponse) bool { return item.ID == a.ID })
		if s.SelectedShift != nil && s.SelectedShift.ID == a.ID {
			s.SelectedShift = nil
		}

	case GroupsRequested:
		s.Groups = requested(s.Groups, a.Search, a.Generation)
		s.Err = ""
	case GroupsLoaded:
		if a.Generation != s.Groups.Generation {
			return s
		}
		s.Groups = loaded(s.Groups, a.Page)
	case GroupsFailed:
		if a.Generation != s.Groups.Generation {
			return s
		}
		s.Groups.Loading = false
		s.Err = errString(a.Err, "Failed to load attendance groups")
	case GroupDeleted:
		s.Groups.Items = without(s.Groups.Items, func(item attendancegroup.AttendanceGroupResponse) bool { return item.ID == a.ID })

	case ErrorCleared:
		s.Err = ""
	}
	return s
}

func requested[T any](l List[T], search string, gen uint64) List[T] {
	l.Search = search
	l.Generation = gen
	l.Loading = true
	return l
}

func loaded[T any](l List[T], p page.Page[T]) List[T] {
	l.Items = append([]T(nil), p.Content...)
	l.Pagination = paginationOf(p)
	l.Loading = false
	return l
}

func without[T any](items []T, drop func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !drop(item) {
			out = append(out, item)
		}
	}
	return out
}

func copyShift(s *shift.ShiftResponse) *shift.ShiftResponse {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func errString(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	return err.Error()
}

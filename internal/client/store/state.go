package store

import (
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/attendancegroup"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
)

type Pagination struct {
	Page          int
	Size          int
	TotalPages    int
	TotalElements int64
}

// List is one paged collection together with the generation of the load that
// owns it.
type List[T any] struct {
	Items      []T
	Pagination Pagination
	Search     string
	Generation uint64
	Loading    bool
}

type State struct {
	Shifts        List[shift.ShiftResponse]
	Groups        List[attendancegroup.AttendanceGroupResponse]
	SelectedShift *shift.ShiftResponse
	Err           string
}

// Initial is the empty state with the default page size.
func Initial() State {
	return State{
		Shifts: List[shift.ShiftResponse]{Pagination: Pagination{Size: page.DefaultSize}},
		Groups: List[attendancegroup.AttendanceGroupResponse]{Pagination: Pagination{Size: page.DefaultSize}},
	}
}

func paginationOf[T any](p page.Page[T]) Pagination {
	return Pagination{
		Page:          p.Number,
		Size:          p.Size,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
	}
}

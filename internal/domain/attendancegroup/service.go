package attendancegroup

import (
	"context"

	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
)

type AttendanceGroupService interface {
	List(ctx context.Context, filter ListFilter) (page.Page[AttendanceGroupResponse], error)
	GetByID(ctx context.Context, id int64) (AttendanceGroupResponse, error)
	GetWeeklySchedule(ctx context.Context, id int64) (ResolvedWeek, error)
	Create(ctx context.Context, req CreateAttendanceGroupRequest) (AttendanceGroupResponse, error)
	Update(ctx context.Context, req UpdateAttendanceGroupRequest) (AttendanceGroupResponse, error)
	Delete(ctx context.Context, id int64) error
}

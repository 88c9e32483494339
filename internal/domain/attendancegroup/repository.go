package attendancegroup

import "context"

type AttendanceGroupRepository interface {
	Create(ctx context.Context, group AttendanceGroup) (AttendanceGroup, error)
	// GetByID returns the group regardless of status.
	GetByID(ctx context.Context, id int64) (AttendanceGroup, error)
	List(ctx context.Context, filter ListFilter) ([]AttendanceGroup, int64, error)
	Update(ctx context.Context, group AttendanceGroup) (AttendanceGroup, error)
	SoftDelete(ctx context.Context, id int64) error
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
}

package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/attendancegroup"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceGroupRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceGroupRepository(db *database.DB) attendancegroup.AttendanceGroupRepository {
	return &attendanceGroupRepositoryImpl{db: db}
}

const groupSelect = `
	SELECT g.id, g.name, g.owner_id, g.sub_owner_ids, g.timezone, g.relocation_sync,
		   g.member_tracking_required, g.member_tracking_required_conditions,
		   g.member_tracking_optional, g.member_tracking_optional_conditions,
		   g.shift_type, g.default_shift_id,
		   g.monday_shift_id, g.tuesday_shift_id, g.wednesday_shift_id, g.thursday_shift_id,
		   g.friday_shift_id, g.saturday_shift_id, g.sunday_shift_id,
		   g.use_public_holidays, g.special_days, g.require_photo, g.allow_offsite,
		   g.out_of_office_policy, g.business_trip_policy, g.partial_leave_policy,
		   g.record_overtime, g.non_working_day_approval, g.non_working_day_reset_time,
		   g.allow_corrections, g.correction_types, g.status, g.created_at, g.updated_at,
		   s.name, s.start_time, s.end_time,
		   (SELECT COUNT(*) FROM users u WHERE u.attendance_group_id = g.id)
	FROM attendance_groups g
	LEFT JOIN shifts s ON s.id = g.default_shift_id`

func scanGroup(row pgx.Row) (attendancegroup.AttendanceGroup, error) {
	var g attendancegroup.AttendanceGroup
	err := row.Scan(
		&g.ID, &g.Name, &g.OwnerID, &g.SubOwnerIDs, &g.Timezone, &g.RelocationSync,
		&g.MemberTrackingRequired, &g.MemberTrackingRequiredConditions,
		&g.MemberTrackingOptional, &g.MemberTrackingOptionalConditions,
		&g.ShiftType, &g.DefaultShiftID,
		&g.Weekly.Monday, &g.Weekly.Tuesday, &g.Weekly.Wednesday, &g.Weekly.Thursday,
		&g.Weekly.Friday, &g.Weekly.Saturday, &g.Weekly.Sunday,
		&g.UsePublicHolidays, &g.SpecialDays, &g.RequirePhoto, &g.AllowOffsite,
		&g.OutOfOfficePolicy, &g.BusinessTripPolicy, &g.PartialLeavePolicy,
		&g.RecordOvertime, &g.NonWorkingDayApproval, &g.NonWorkingDayResetTime,
		&g.AllowCorrections, &g.CorrectionTypes, &g.Status, &g.CreatedAt, &g.UpdatedAt,
		&g.DefaultShiftName, &g.DefaultShiftStart, &g.DefaultShiftEnd,
		&g.MemberCount,
	)
	return g, err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Create implements attendancegroup.AttendanceGroupRepository.
func (r *attendanceGroupRepositoryImpl) Create(ctx context.Context, g attendancegroup.AttendanceGroup) (attendancegroup.AttendanceGroup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_groups (
			name, owner_id, sub_owner_ids, timezone, relocation_sync,
			member_tracking_required, member_tracking_required_conditions,
			member_tracking_optional, member_tracking_optional_conditions,
			shift_type, default_shift_id,
			monday_shift_id, tuesday_shift_id, wednesday_shift_id, thursday_shift_id,
			friday_shift_id, saturday_shift_id, sunday_shift_id,
			use_public_holidays, special_days, require_photo, allow_offsite,
			out_of_office_policy, business_trip_policy, partial_leave_policy,
			record_overtime, non_working_day_approval, non_working_day_reset_time,
			allow_corrections, correction_types, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
				$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)
		RETURNING id`

	var id int64
	err := q.QueryRow(ctx, query,
		g.Name, g.OwnerID, nonNil(g.SubOwnerIDs), g.Timezone, g.RelocationSync,
		g.MemberTrackingRequired, g.MemberTrackingRequiredConditions,
		g.MemberTrackingOptional, g.MemberTrackingOptionalConditions,
		g.ShiftType, g.DefaultShiftID,
		g.Weekly.Monday, g.Weekly.Tuesday, g.Weekly.Wednesday, g.Weekly.Thursday,
		g.Weekly.Friday, g.Weekly.Saturday, g.Weekly.Sunday,
		g.UsePublicHolidays, nonNil(g.SpecialDays), g.RequirePhoto, g.AllowOffsite,
		g.OutOfOfficePolicy, g.BusinessTripPolicy, g.PartialLeavePolicy,
		g.RecordOvertime, g.NonWorkingDayApproval, g.NonWorkingDayResetTime,
		g.AllowCorrections, nonNil(g.CorrectionTypes), g.Status,
	).Scan(&id)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return attendancegroup.AttendanceGroup{}, attendancegroup.ErrDuplicateGroupName
		case isForeignKeyViolation(err):
			return attendancegroup.AttendanceGroup{}, attendancegroup.ErrWeeklyShiftNotFound
		}
		return attendancegroup.AttendanceGroup{}, fmt.Errorf("failed to create attendance group: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID implements attendancegroup.AttendanceGroupRepository.
func (r *attendanceGroupRepositoryImpl) GetByID(ctx context.Context, id int64) (attendancegroup.AttendanceGroup, error) {
	q := GetQuerier(ctx, r.db)

	g, err := scanGroup(q.QueryRow(ctx, groupSelect+` WHERE g.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendancegroup.AttendanceGroup{}, attendancegroup.ErrAttendanceGroupNotFound
		}
		return attendancegroup.AttendanceGroup{}, fmt.Errorf("failed to get attendance group by id: %w", err)
	}
	return g, nil
}

// List implements attendancegroup.AttendanceGroupRepository.
func (r *attendanceGroupRepositoryImpl) List(ctx context.Context, filter attendancegroup.ListFilter) ([]attendancegroup.AttendanceGroup, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE g.status = $1`
	args := []interface{}{filter.Status}
	if filter.Search != "" {
		where += ` AND g.name ILIKE $2`
		args = append(args, "%"+filter.Search+"%")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_groups g`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance groups: %w", err)
	}

	query := fmt.Sprintf(`%s%s ORDER BY %s, g.id LIMIT %d OFFSET %d`,
		groupSelect, where,
		orderBy(filter.Page.SortBy, string(filter.Page.Direction), "g.name"),
		filter.Page.Size, filter.Page.Offset(),
	)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance groups: %w", err)
	}
	defer rows.Close()

	groups := make([]attendancegroup.AttendanceGroup, 0, filter.Page.Size)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance groups: %w", err)
	}
	return groups, total, nil
}

// Update implements attendancegroup.AttendanceGroupRepository.
func (r *attendanceGroupRepositoryImpl) Update(ctx context.Context, g attendancegroup.AttendanceGroup) (attendancegroup.AttendanceGroup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_groups SET
			name = $2, owner_id = $3, sub_owner_ids = $4, timezone = $5, relocation_sync = $6,
			member_tracking_required = $7, member_tracking_required_conditions = $8,
			member_tracking_optional = $9, member_tracking_optional_conditions = $10,
			shift_type = $11, default_shift_id = $12,
			monday_shift_id = $13, tuesday_shift_id = $14, wednesday_shift_id = $15,
			thursday_shift_id = $16, friday_shift_id = $17, saturday_shift_id = $18,
			sunday_shift_id = $19,
			use_public_holidays = $20, special_days = $21, require_photo = $22, allow_offsite = $23,
			out_of_office_policy = $24, business_trip_policy = $25, partial_leave_policy = $26,
			record_overtime = $27, non_working_day_approval = $28, non_working_day_reset_time = $29,
			allow_corrections = $30, correction_types = $31, status = $32, updated_at = NOW()
		WHERE id = $1`

	tag, err := q.Exec(ctx, query,
		g.ID, g.Name, g.OwnerID, nonNil(g.SubOwnerIDs), g.Timezone, g.RelocationSync,
		g.MemberTrackingRequired, g.MemberTrackingRequiredConditions,
		g.MemberTrackingOptional, g.MemberTrackingOptionalConditions,
		g.ShiftType, g.DefaultShiftID,
		g.Weekly.Monday, g.Weekly.Tuesday, g.Weekly.Wednesday, g.Weekly.Thursday,
		g.Weekly.Friday, g.Weekly.Saturday, g.Weekly.Sunday,
		g.UsePublicHolidays, nonNil(g.SpecialDays), g.RequirePhoto, g.AllowOffsite,
		g.OutOfOfficePolicy, g.BusinessTripPolicy, g.PartialLeavePolicy,
		g.RecordOvertime, g.NonWorkingDayApproval, g.NonWorkingDayResetTime,
		g.AllowCorrections, nonNil(g.CorrectionTypes), g.Status,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return attendancegroup.AttendanceGroup{}, attendancegroup.ErrDuplicateGroupName
		case isForeignKeyViolation(err):
			return attendancegroup.AttendanceGroup{}, attendancegroup.ErrWeeklyShiftNotFound
		}
		return attendancegroup.AttendanceGroup{}, fmt.Errorf("failed to update attendance group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendancegroup.AttendanceGroup{}, attendancegroup.ErrAttendanceGroupNotFound
	}
	return r.GetByID(ctx, g.ID)
}

// SoftDelete implements attendancegroup.AttendanceGroupRepository.
func (r *attendanceGroupRepositoryImpl) SoftDelete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE attendance_groups SET status = $2, updated_at = NOW() WHERE id = $1 AND status <> $2`,
		id, attendancegroup.StatusInactive)
	if err != nil {
		return fmt.Errorf("failed to delete attendance group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendancegroup.ErrAttendanceGroupNotFound
	}
	return nil
}

// ExistsByName implements attendancegroup.AttendanceGroupRepository.
func (r *attendanceGroupRepositoryImpl) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM attendance_groups WHERE LOWER(name) = LOWER($1) AND id <> $2)`,
		name, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check attendance group name: %w", err)
	}
	return exists, nil
}

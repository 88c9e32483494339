package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `
	id, code, name, description, shift_type, date_type,
	start_time, end_time, is_next_day_end,
	require_clock_in, require_clock_out, clock_in_early_minutes,
	late_threshold_minutes, half_day_late_threshold_minutes,
	clock_out_late_minutes, early_out_threshold_minutes, half_day_early_threshold_minutes,
	flex_late_hours, flex_late_minutes, flex_early_hours, flex_early_minutes,
	has_breaks, break_duration_minutes, working_hours_minutes, status,
	created_at, updated_at, created_by, updated_by`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(
		&s.ID, &s.Code, &s.Name, &s.Description, &s.ShiftType, &s.DateType,
		&s.StartTime, &s.EndTime, &s.IsNextDayEnd,
		&s.RequireClockIn, &s.RequireClockOut, &s.ClockInEarlyMinutes,
		&s.LateThresholdMinutes, &s.HalfDayLateThresholdMinutes,
		&s.ClockOutLateMinutes, &s.EarlyOutThresholdMinutes, &s.HalfDayEarlyThresholdMinutes,
		&s.FlexLateHours, &s.FlexLateMinutes, &s.FlexEarlyHours, &s.FlexEarlyMinutes,
		&s.HasBreaks, &s.BreakDurationMinutes, &s.WorkingHoursMinutes, &s.Status,
		&s.CreatedAt, &s.UpdatedAt, &s.CreatedBy, &s.UpdatedBy,
	)
	return s, err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (
			code, name, description, shift_type, date_type,
			start_time, end_time, is_next_day_end,
			require_clock_in, require_clock_out, clock_in_early_minutes,
			late_threshold_minutes, half_day_late_threshold_minutes,
			clock_out_late_minutes, early_out_threshold_minutes, half_day_early_threshold_minutes,
			flex_late_hours, flex_late_minutes, flex_early_hours, flex_early_minutes,
			has_breaks, break_duration_minutes, working_hours_minutes, status,
			created_by, updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
				$17, $18, $19, $20, $21, $22, $23, $24, $25, $25)
		RETURNING ` + shiftColumns

	created, err := scanShift(q.QueryRow(ctx, query,
		s.Code, s.Name, s.Description, s.ShiftType, s.DateType,
		s.StartTime, s.EndTime, s.IsNextDayEnd,
		s.RequireClockIn, s.RequireClockOut, s.ClockInEarlyMinutes,
		s.LateThresholdMinutes, s.HalfDayLateThresholdMinutes,
		s.ClockOutLateMinutes, s.EarlyOutThresholdMinutes, s.HalfDayEarlyThresholdMinutes,
		s.FlexLateHours, s.FlexLateMinutes, s.FlexEarlyHours, s.FlexEarlyMinutes,
		s.HasBreaks, s.BreakDurationMinutes, s.WorkingHoursMinutes, s.Status,
		s.CreatedBy,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return shift.Shift{}, shift.ErrDuplicateShiftCode
		}
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return created, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id int64) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`
	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by id: %w", err)
	}
	return s, nil
}

// GetByIDs implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByIDs(ctx context.Context, ids []int64) (map[int64]shift.Shift, error) {
	result := make(map[int64]shift.Shift, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = ANY($1)`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get shifts by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		result[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return result, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context, filter shift.ListFilter) ([]shift.Shift, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE status = $1`
	args := []interface{}{filter.Status}
	if filter.Search != "" {
		where = `WHERE status = $1 AND name ILIKE $2`
		args = []interface{}{shift.StatusActive, "%" + filter.Search + "%"}
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM shifts `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shifts: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM shifts %s ORDER BY %s, id LIMIT %d OFFSET %d`,
		shiftColumns, where,
		orderBy(filter.Page.SortBy, string(filter.Page.Direction), "name"),
		filter.Page.Size, filter.Page.Offset(),
	)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	shifts := make([]shift.Shift, 0, filter.Page.Size)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return shifts, total, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts SET
			code = $2, name = $3, description = $4, shift_type = $5, date_type = $6,
			start_time = $7, end_time = $8, is_next_day_end = $9,
			require_clock_in = $10, require_clock_out = $11, clock_in_early_minutes = $12,
			late_threshold_minutes = $13, half_day_late_threshold_minutes = $14,
			clock_out_late_minutes = $15, early_out_threshold_minutes = $16,
			half_day_early_threshold_minutes = $17,
			flex_late_hours = $18, flex_late_minutes = $19, flex_early_hours = $20, flex_early_minutes = $21,
			has_breaks = $22, break_duration_minutes = $23, working_hours_minutes = $24, status = $25,
			updated_by = $26, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + shiftColumns

	updated, err := scanShift(q.QueryRow(ctx, query,
		s.ID, s.Code, s.Name, s.Description, s.ShiftType, s.DateType,
		s.StartTime, s.EndTime, s.IsNextDayEnd,
		s.RequireClockIn, s.RequireClockOut, s.ClockInEarlyMinutes,
		s.LateThresholdMinutes, s.HalfDayLateThresholdMinutes,
		s.ClockOutLateMinutes, s.EarlyOutThresholdMinutes, s.HalfDayEarlyThresholdMinutes,
		s.FlexLateHours, s.FlexLateMinutes, s.FlexEarlyHours, s.FlexEarlyMinutes,
		s.HasBreaks, s.BreakDurationMinutes, s.WorkingHoursMinutes, s.Status,
		s.UpdatedBy,
	))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return shift.Shift{}, shift.ErrShiftNotFound
		case isUniqueViolation(err):
			return shift.Shift{}, shift.ErrDuplicateShiftCode
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}
	return updated, nil
}

// SoftDelete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) SoftDelete(ctx context.Context, id int64, updatedBy *int64) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE shifts SET status = $2, updated_by = $3, updated_at = NOW() WHERE id = $1`
	tag, err := q.Exec(ctx, query, id, shift.StatusInactive, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// ExistsByCode implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM shifts WHERE code = $1 AND id <> $2)`, code, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check shift code: %w", err)
	}
	return exists, nil
}

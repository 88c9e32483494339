package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentSelect = `
	SELECT d.id, d.name, d.parent_id, d.created_at, d.updated_at,
		   (SELECT COUNT(*) FROM users u WHERE u.department_id = d.id)
	FROM departments d`

func scanDepartment(row pgx.Row) (department.Department, error) {
	var d department.Department
	err := row.Scan(&d.ID, &d.Name, &d.ParentID, &d.CreatedAt, &d.UpdatedAt, &d.MemberCount)
	return d, err
}

func (r *departmentRepositoryImpl) Create(ctx context.Context, dept department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	var id int64
	err := q.QueryRow(ctx, `INSERT INTO departments (name, parent_id) VALUES ($1, $2) RETURNING id`,
		dept.Name, dept.ParentID,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return department.Department{}, department.ErrParentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id int64) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDepartment(q.QueryRow(ctx, departmentSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department by id: %w", err)
	}
	return d, nil
}

func (r *departmentRepositoryImpl) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, departmentSelect+` ORDER BY d.name, d.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var depts []department.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		depts = append(depts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}
	return depts, nil
}

func (r *departmentRepositoryImpl) Update(ctx context.Context, dept department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE departments SET name = $2, parent_id = $3, updated_at = NOW() WHERE id = $1`,
		dept.ID, dept.Name, dept.ParentID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return department.Department{}, department.ErrParentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to update department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return r.GetByID(ctx, dept.ID)
}

func (r *departmentRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return department.ErrDepartmentHasChildren
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepositoryImpl) HasChildren(ctx context.Context, id int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM departments WHERE parent_id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check department children: %w", err)
	}
	return exists, nil
}

func (r *departmentRepositoryImpl) ExistsByName(ctx context.Context, name string, parentID *int64, excludeID int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM departments
			WHERE LOWER(name) = LOWER($1) AND parent_id IS NOT DISTINCT FROM $2 AND id <> $3
		)`, name, parentID, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check department name: %w", err)
	}
	return exists, nil
}

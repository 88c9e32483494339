package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userSelect = `
	SELECT u.id, u.email, u.username, u.password_hash, u.first_name, u.last_name, u.status,
		   COALESCE((SELECT array_agg(ur.role ORDER BY ur.role) FROM user_roles ur WHERE ur.user_id = u.id), '{}'),
		   u.phone_number, u.department_id, u.attendance_group_id, u.alias, u.desk_id,
		   u.phone_extension, u.employee_number, u.external_user_id, u.gender, u.workforce_type,
		   u.date_of_employment, u.country, u.city, u.direct_manager, u.dotted_line_manager,
		   u.job_title, u.last_login_at, u.created_at, u.updated_at
	FROM users u`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	var roles []string
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Status,
		&roles,
		&u.PhoneNumber, &u.DepartmentID, &u.AttendanceGroupID, &u.Alias, &u.DeskID,
		&u.PhoneExtension, &u.EmployeeNumber, &u.ExternalUserID, &u.Gender, &u.WorkforceType,
		&u.DateOfEmployment, &u.Country, &u.City, &u.DirectManager, &u.DottedLineManager,
		&u.JobTitle, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	u.Roles = make([]user.Role, 0, len(roles))
	for _, r := range roles {
		u.Roles = append(u.Roles, user.Role(r))
	}
	return u, nil
}

// Create implements user.UserRepository. Roles are written by SetRoles.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			email, username, password_hash, first_name, last_name, status,
			phone_number, department_id, attendance_group_id, alias, desk_id,
			phone_extension, employee_number, external_user_id, gender, workforce_type,
			date_of_employment, country, city, direct_manager, dotted_line_manager, job_title
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
				$17, $18, $19, $20, $21, $22)
		RETURNING id`

	var id int64
	err := q.QueryRow(ctx, query,
		newUser.Email, newUser.Username, newUser.PasswordHash, newUser.FirstName, newUser.LastName, newUser.Status,
		newUser.PhoneNumber, newUser.DepartmentID, newUser.AttendanceGroupID, newUser.Alias, newUser.DeskID,
		newUser.PhoneExtension, newUser.EmployeeNumber, newUser.ExternalUserID, newUser.Gender, newUser.WorkforceType,
		newUser.DateOfEmployment, newUser.Country, newUser.City, newUser.DirectManager, newUser.DottedLineManager,
		newUser.JobTitle,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id int64) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, userSelect+` WHERE u.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, userSelect+` WHERE u.email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1 = 1`
	var args []interface{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND u.status = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (u.first_name ILIKE $%d OR u.last_name ILIKE $%d OR u.email ILIKE $%d)`, n, n, n)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(`%s%s ORDER BY %s, u.id LIMIT %d OFFSET %d`,
		userSelect, where,
		orderBy(filter.Page.SortBy, string(filter.Page.Direction), "u.id"),
		filter.Page.Size, filter.Page.Offset(),
	)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0, filter.Page.Size)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, total, nil
}

// Update implements user.UserRepository. Password, status and roles have
// their own methods.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users SET
			email = $2, first_name = $3, last_name = $4, phone_number = $5,
			department_id = $6, attendance_group_id = $7, alias = $8, desk_id = $9,
			phone_extension = $10, employee_number = $11, external_user_id = $12,
			gender = $13, workforce_type = $14, date_of_employment = $15, country = $16,
			city = $17, direct_manager = $18, dotted_line_manager = $19, job_title = $20,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := q.Exec(ctx, query,
		u.ID, u.Email, u.FirstName, u.LastName, u.PhoneNumber,
		u.DepartmentID, u.AttendanceGroupID, u.Alias, u.DeskID,
		u.PhoneExtension, u.EmployeeNumber, u.ExternalUserID,
		u.Gender, u.WorkforceType, u.DateOfEmployment, u.Country,
		u.City, u.DirectManager, u.DottedLineManager, u.JobTitle,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.User{}, user.ErrUserNotFound
	}
	return r.GetByID(ctx, u.ID)
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id int64, passwordHash string, status user.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE users SET password_hash = $2, status = $3, updated_at = NOW() WHERE id = $1`,
		id, passwordHash, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin implements user.UserRepository.
func (r *userRepositoryImpl) UpdateLastLogin(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// SetRoles implements user.UserRepository. Call it inside a transaction.
func (r *userRepositoryImpl) SetRoles(ctx context.Context, id int64, roles []user.Role) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("failed to clear user roles: %w", err)
	}
	if len(roles) == 0 {
		return nil
	}

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	_, err := q.Exec(ctx,
		`INSERT INTO user_roles (user_id, role) SELECT $1, unnest($2::text[]) ON CONFLICT DO NOTHING`,
		id, names,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to set user roles: %w", err)
	}
	return nil
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// ExistsByUsername implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/attendancegroup"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hcms-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepository_RolesInTransaction(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewUserRepository(db)
	tx := postgresql.NewTxRunner(db)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	var created user.User
	err = tx.InTx(ctx, func(ctx context.Context) error {
		u, err := repo.Create(ctx, user.User{
			Email:        "jane@example.com",
			Username:     "jane1",
			PasswordHash: string(hash),
			FirstName:    "Jane",
			Status:       user.StatusActive,
		})
		if err != nil {
			return err
		}
		if err := repo.SetRoles(ctx, u.ID, []user.Role{user.RoleHRAdmin, user.RoleEmployee}); err != nil {
			return err
		}
		created, err = repo.GetByID(ctx, u.ID)
		return err
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []user.Role{user.RoleHRAdmin, user.RoleEmployee}, created.Roles)

	byEmail, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.Create(ctx, user.User{Email: "jane@example.com", Username: "jane2", PasswordHash: "x", FirstName: "J", Status: user.StatusActive})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestAttendanceGroupRepository_JoinsDefaultShift(t *testing.T) {
	db := newTestDatabase(t)
	shifts := postgresql.NewShiftRepository(db)
	groups := postgresql.NewAttendanceGroupRepository(db)
	ctx := context.Background()

	s := shift.New()
	s.Name = "Regular"
	require.NoError(t, s.RecomputeWorkingHours())
	s, err := shifts.Create(ctx, s)
	require.NoError(t, err)

	g := attendancegroup.New()
	g.Name = "Head Office"
	g.ShiftType = attendancegroup.ShiftTypeFixed
	g.DefaultShiftID = &s.ID
	g.Weekly.Monday = &s.ID

	created, err := groups.Create(ctx, g)
	require.NoError(t, err)
	require.NotNil(t, created.DefaultShiftName)
	assert.Equal(t, "Regular", *created.DefaultShiftName)
	assert.Equal(t, "09:00", *created.DefaultShiftStart)
	assert.Equal(t, s.ID, *created.Weekly.Monday)
	assert.Nil(t, created.Weekly.Sunday)

	exists, err := groups.ExistsByName(ctx, "HEAD office", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, groups.SoftDelete(ctx, created.ID))
	got, err := groups.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, attendancegroup.StatusInactive, got.Status)
}

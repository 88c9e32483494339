package user

type Permission string

const (
	// Self
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Shifts
	PermissionShiftView   Permission = "shift.view"
	PermissionShiftManage Permission = "shift.manage"

	// Attendance groups
	PermissionAttendanceGroupView   Permission = "attendance_group.view"
	PermissionAttendanceGroupManage Permission = "attendance_group.manage"

	// Members
	PermissionUserView   Permission = "user.view"
	PermissionUserManage Permission = "user.manage"

	// Departments
	PermissionDepartmentView   Permission = "department.view"
	PermissionDepartmentManage Permission = "department.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionShiftView,
		PermissionShiftManage,
		PermissionAttendanceGroupView,
		PermissionAttendanceGroupManage,
		PermissionUserView,
		PermissionUserManage,
		PermissionDepartmentView,
		PermissionDepartmentManage,
	},
	RoleHRAdmin: {
		PermissionViewOwnProfile,
		PermissionShiftView,
		PermissionShiftManage,
		PermissionAttendanceGroupView,
		PermissionAttendanceGroupManage,
		PermissionUserView,
		PermissionUserManage,
		PermissionDepartmentView,
		PermissionDepartmentManage,
	},
	RoleManager: {
		// Manager can view team setup
		PermissionViewOwnProfile,
		PermissionShiftView,
		PermissionAttendanceGroupView,
		PermissionUserView,
		PermissionDepartmentView,
	},
	RoleEmployee: {
		// Employee has basic access
		PermissionViewOwnProfile,
		PermissionShiftView,
		PermissionAttendanceGroupView,
		PermissionDepartmentView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// AnyHasPermission checks the permission across all roles a user holds
func AnyHasPermission(roles []Role, permission Permission) bool {
	for _, r := range roles {
		if HasPermission(r, permission) {
			return true
		}
	}
	return false
}

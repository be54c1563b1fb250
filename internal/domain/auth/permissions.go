package auth

import "sort"

const (
	PermLeaveRead         = "leave.read"
	PermLeaveWrite        = "leave.write"
	PermLeaveApprove      = "leave.approve"
	PermAttendanceRead    = "attendance.read"
	PermAttendanceWrite   = "attendance.write"
	PermAttendanceEdit    = "attendance.edit"
	PermEmployeesRead     = "employees.read"
	PermReportsRead       = "reports.read"
	PermNotificationsRead = "notifications.read"
)

// RolePermissions is the whole authorization policy. Handlers and the UI
// derive which actions to expose from this map rather than comparing role
// strings in place.
var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermLeaveRead,
		PermLeaveWrite,
		PermAttendanceRead,
		PermAttendanceWrite,
		PermEmployeesRead,
		PermNotificationsRead,
	},
	RoleManager: {
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveApprove,
		PermAttendanceRead,
		PermAttendanceWrite,
		PermEmployeesRead,
		PermReportsRead,
		PermNotificationsRead,
	},
	RoleHR: {
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveApprove,
		PermAttendanceRead,
		PermAttendanceWrite,
		PermAttendanceEdit,
		PermEmployeesRead,
		PermReportsRead,
		PermNotificationsRead,
	},
	RoleAdmin: {
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveApprove,
		PermAttendanceRead,
		PermAttendanceWrite,
		PermAttendanceEdit,
		PermEmployeesRead,
		PermReportsRead,
		PermNotificationsRead,
	},
}

func Allowed(role, permission string) bool {
	for _, candidate := range RolePermissions[role] {
		if candidate == permission {
			return true
		}
	}
	return false
}

// Privileged reports whether the role may act on other employees' records.
func Privileged(role string) bool {
	return Allowed(role, PermLeaveApprove)
}

// Capabilities returns the sorted permission set for a role, for the UI to
// decide which views and actions to render.
func Capabilities(role string) []string {
	perms := RolePermissions[role]
	if len(perms) == 0 {
		return nil
	}
	out := make([]string, len(perms))
	copy(out, perms)
	sort.Strings(out)
	return out
}

package model

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleSuperAdmin    Role = "Super Admin"
	RoleBoss          Role = "Boss"
	RoleRegistry      Role = "Registry"
	RoleHumanResource Role = "Human Resource"
	RoleHOD           Role = "HOD"
	RoleEmployee      Role = "Employee"
)

var Roles = []Role{RoleSuperAdmin, RoleBoss, RoleRegistry, RoleHumanResource, RoleHOD, RoleEmployee}

func ParseRole(s string) (Role, error) {
	key := strings.ToLower(strings.Join(strings.Fields(s), " "))
	switch key {
	case "hr":
		return RoleHumanResource, nil
	case "superadmin", "super_admin", "super-admin":
		return RoleSuperAdmin, nil
	}
	for _, r := range Roles {
		if strings.ToLower(string(r)) == key {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// RedirectPath is the dashboard the UI lands on after login.
func (r Role) RedirectPath() string {
	switch r {
	case RoleSuperAdmin:
		return "/super-admin"
	case RoleBoss:
		return "/boss"
	case RoleRegistry:
		return "/registry"
	case RoleHumanResource:
		return "/hr"
	case RoleHOD:
		return "/hod"
	default:
		return "/employee"
	}
}

// Permission names checked by middleware.Permission.
const (
	PermManageAdmins  = "manage_admins"
	PermManageFiles   = "manage_files"
	PermForwardRecord = "forward_record"
	PermReviewLeave   = "review_leave"
	PermAssignTask    = "assign_task"
	PermViewReports   = "view_reports"
	PermViewStaff     = "view_staff"
)

// RolePermissions is the static grant table. Super Admin bypasses it.
var RolePermissions = map[Role][]string{
	RoleBoss:          {PermForwardRecord, PermReviewLeave, PermAssignTask, PermViewReports, PermViewStaff},
	RoleRegistry:      {PermManageFiles, PermForwardRecord},
	RoleHumanResource: {PermReviewLeave, PermAssignTask, PermViewReports, PermViewStaff},
	RoleHOD:           {PermForwardRecord, PermReviewLeave, PermAssignTask, PermViewStaff},
	RoleEmployee:      {},
}

func (r Role) Can(permission string) bool {
	if r == RoleSuperAdmin {
		return true
	}
	for _, p := range RolePermissions[r] {
		if p == permission {
			return true
		}
	}
	return false
}

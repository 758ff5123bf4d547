package permission

import (
	"time"

	"github.com/frahmantamala/onboarding-management/internal"
)

// Well-known role codes. The catalog allows admins to add more; these are the
// ones the default grant matrix knows about.
const (
	RoleHR         = "HR"
	RoleManager    = "MANAGER"
	RoleEmployee   = "EMPLOYEE"
	RoleIT         = "IT"
	RoleFinance    = "FINANCE"
	RoleFacilities = "FACILITIES"
)

// Permission keys gate both API routes and client navigation.
const (
	ViewDashboard = "view_dashboard"
	ViewTasks     = "view_tasks"
	ViewDocuments = "view_documents"
	ViewTrainings = "view_trainings"
	ViewCalendar  = "view_calendar"
	ViewFeedback  = "view_feedback"
	ViewSettings  = "view_settings"

	ManageEmployees = "manage_employees"
	ManageTemplates = "manage_templates"
	ManagePolicies  = "manage_policies"
	ManageLibrary   = "manage_library"
	ManageTrainings = "manage_trainings"
	ManageCalendar  = "manage_calendar"
	ViewAnalytics   = "view_analytics"

	ManagePermissions = "manage_permissions"
)

// All lists every known permission key. Order matters only for stable
// matrix output.
var All = []string{
	ViewDashboard,
	ViewTasks,
	ViewDocuments,
	ViewTrainings,
	ViewCalendar,
	ViewFeedback,
	ViewSettings,
	ManageEmployees,
	ManageTemplates,
	ManagePolicies,
	ManageLibrary,
	ManageTrainings,
	ManageCalendar,
	ViewAnalytics,
	ManagePermissions,
}

var Labels = map[string]string{
	ViewDashboard:     "Dashboard",
	ViewTasks:         "My Tasks",
	ViewDocuments:     "Documents",
	ViewTrainings:     "Trainings",
	ViewCalendar:      "Calendar",
	ViewFeedback:      "Feedback",
	ViewSettings:      "Settings",
	ManageEmployees:   "Employees",
	ManageTemplates:   "Task Templates",
	ManagePolicies:    "Policy Management",
	ManageLibrary:     "Library Management",
	ManageTrainings:   "Training Management",
	ManageCalendar:    "Calendar Templates",
	ViewAnalytics:     "Analytics",
	ManagePermissions: "Access Permissions",
}

// RolePermission is one grant. Presence means granted; absence means denied.
type RolePermission struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Role       string    `json:"role" gorm:"column:role;not null;uniqueIndex:idx_role_permission"`
	Permission string    `json:"permission" gorm:"column:permission;not null;uniqueIndex:idx_role_permission"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

var basicView = []string{
	ViewDashboard,
	ViewTasks,
	ViewDocuments,
	ViewTrainings,
	ViewCalendar,
	ViewFeedback,
	ViewSettings,
}

// DefaultGrants is the matrix installed by Seed on an empty grant table.
func DefaultGrants() []RolePermission {
	var grants []RolePermission

	for _, p := range All {
		grants = append(grants, RolePermission{Role: RoleHR, Permission: p})
	}

	for _, p := range basicView {
		grants = append(grants, RolePermission{Role: RoleManager, Permission: p})
	}
	grants = append(grants,
		RolePermission{Role: RoleManager, Permission: ManagePolicies},
		RolePermission{Role: RoleManager, Permission: ManageLibrary},
		RolePermission{Role: RoleManager, Permission: ViewAnalytics},
	)

	for _, p := range basicView {
		grants = append(grants, RolePermission{Role: RoleEmployee, Permission: p})
	}

	for _, role := range []string{RoleIT, RoleFinance} {
		for _, p := range []string{ViewDashboard, ViewTasks, ViewDocuments, ViewSettings} {
			grants = append(grants, RolePermission{Role: role, Permission: p})
		}
	}

	return grants
}

var (
	ErrHRImmutable = internal.NewForbiddenError("HR role grants cannot be modified", internal.ErrCodeHRImmutable)
)

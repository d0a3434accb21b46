package model

// Permission represents a string code for a specific system action.
type Permission string

const (
	// PermissionStudentsRead allows viewing student lists, grades and details.
	PermissionStudentsRead Permission = "students:read"

	// PermissionStudentsWrite allows creating and updating students,
	// enrollments, attendance and grades.
	PermissionStudentsWrite Permission = "students:write"

	// PermissionTeachersRead allows viewing teacher records.
	PermissionTeachersRead Permission = "teachers:read"

	// PermissionTeachersWrite allows managing teachers, schedules and leaves.
	PermissionTeachersWrite Permission = "teachers:write"

	// PermissionCoursesRead allows viewing courses and sections.
	PermissionCoursesRead Permission = "courses:read"

	// PermissionCoursesWrite allows managing courses and sections.
	PermissionCoursesWrite Permission = "courses:write"

	// PermissionFeesRead allows viewing particulars, structures and invoices.
	PermissionFeesRead Permission = "fees:read"

	// PermissionFeesWrite allows managing fee structures, invoices and payments.
	PermissionFeesWrite Permission = "fees:write"

	// PermissionPayrollRead allows viewing payroll runs and configuration.
	PermissionPayrollRead Permission = "payroll:read"

	// PermissionPayrollWrite allows configuring and running payroll.
	PermissionPayrollWrite Permission = "payroll:write"

	// PermissionParentsRead allows viewing parent accounts.
	PermissionParentsRead Permission = "parents:read"

	// PermissionParentsWrite allows managing parent accounts and links.
	PermissionParentsWrite Permission = "parents:write"

	// PermissionNotifySend allows sending notifications to parents.
	PermissionNotifySend Permission = "notifications:send"

	// PermissionDisciplineWrite allows recording discipline and commendations.
	PermissionDisciplineWrite Permission = "discipline:write"

	// PermissionReportsRead allows viewing dashboards and financial reports.
	PermissionReportsRead Permission = "reports:read"

	// PermissionSnapshotsWrite allows capturing term snapshots.
	PermissionSnapshotsWrite Permission = "snapshots:write"

	// PermissionAccountsReset allows resetting portal sessions.
	PermissionAccountsReset Permission = "accounts:reset_session"
)

// AllPermissions is a slice of all available permissions.
var AllPermissions = []Permission{
	PermissionStudentsRead,
	PermissionStudentsWrite,
	PermissionTeachersRead,
	PermissionTeachersWrite,
	PermissionCoursesRead,
	PermissionCoursesWrite,
	PermissionFeesRead,
	PermissionFeesWrite,
	PermissionPayrollRead,
	PermissionPayrollWrite,
	PermissionParentsRead,
	PermissionParentsWrite,
	PermissionNotifySend,
	PermissionDisciplineWrite,
	PermissionReportsRead,
	PermissionSnapshotsWrite,
	PermissionAccountsReset,
}

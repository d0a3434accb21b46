package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionActive      ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrRecoveryFailed     ErrCode = "RECOVERY_FAILED"
	ErrWeakPassword       ErrCode = "WEAK_PASSWORD"
	ErrAccountExists      ErrCode = "ACCOUNT_ALREADY_EXISTS"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"
	ErrPortalAccessOnly ErrCode = "PORTAL_ACCESS_ONLY"
	ErrAdminAccessOnly  ErrCode = "ADMIN_ACCESS_ONLY"
	ErrNotOwnSection    ErrCode = "NOT_OWN_SECTION"
	ErrNotLinkedChild   ErrCode = "NOT_LINKED_CHILD"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidSection ErrCode = "INVALID_SECTION_FORMAT"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"
	ErrActionForbidden  ErrCode = "ACTION_FORBIDDEN"

	// ─── Scheduling ────────────────────────────────────────────────────
	ErrScheduleConflict ErrCode = "SCHEDULE_CONFLICT"

	// ─── Enrollment & grading ──────────────────────────────────────────
	ErrAlreadyEnrolled ErrCode = "ALREADY_ENROLLED"
	ErrNotEnrolled     ErrCode = "NOT_ENROLLED"
	ErrAlreadyExempt   ErrCode = "ALREADY_EXEMPT"
	ErrNotExempt       ErrCode = "NOT_EXEMPT"

	// ─── Fees & payroll ────────────────────────────────────────────────
	ErrNoFeeStructure  ErrCode = "NO_FEE_STRUCTURE"
	ErrPaymentTooLarge ErrCode = "PAYMENT_EXCEEDS_BALANCE"
	ErrPayrollExists   ErrCode = "PAYROLL_EXISTS_FOR_PERIOD"
	ErrNoWorkloadRate  ErrCode = "NO_WORKLOAD_RATE"
	ErrInvoiceNotOpen  ErrCode = "INVOICE_NOT_OPEN"

	// ─── Parents ───────────────────────────────────────────────────────
	ErrStudentHasParent ErrCode = "STUDENT_ALREADY_LINKED"

	// ─── Rate limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Invalid username/ID or password."
	case ErrSessionActive:
		return "You are already logged in on another device."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or expired."
	case ErrRecoveryFailed:
		return "Incorrect answers. Password recovery failed."
	case ErrWeakPassword:
		return "Password must be at least 6 characters with 1 uppercase letter, 3 numbers and 1 special character (!@#$%^&*)."
	case ErrAccountExists:
		return "An account already exists for this ID."
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrPermissionDenied:
		return "Permission denied."
	case ErrPortalAccessOnly:
		return "This resource is restricted to portal users."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."
	case ErrNotOwnSection:
		return "You are not assigned to this section."
	case ErrNotLinkedChild:
		return "This student is not linked to your account."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrInvalidSection:
		return "Invalid section format. Use COURSE-YEAR-SECTION (e.g. BSIT-3-1)."
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrDependencyExists:
		return "This record cannot be deleted because other records still depend on it."
	case ErrActionForbidden:
		return "This action is not allowed."
	case ErrScheduleConflict:
		return "The teacher already has a class scheduled in this time slot."
	case ErrAlreadyEnrolled:
		return "Student is already enrolled in this subject."
	case ErrNotEnrolled:
		return "Student is not enrolled in this subject."
	case ErrAlreadyExempt:
		return "Student is already exempted from this subject."
	case ErrNotExempt:
		return "Student is not exempted from this subject."
	case ErrNoFeeStructure:
		return "No fee structure is defined for this course and year."
	case ErrPaymentTooLarge:
		return "Payment amount exceeds the invoice's remaining balance."
	case ErrPayrollExists:
		return "The teacher already has a payroll run for this period."
	case ErrNoWorkloadRate:
		return "No workload rate is set for one of the teacher's subjects."
	case ErrInvoiceNotOpen:
		return "The invoice is not open for payment."
	case ErrStudentHasParent:
		return "The student is already linked to another parent."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}

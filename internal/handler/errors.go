package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/campushq/campus-backend/internal/repository"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
)

// failFromError translates service and repository sentinels into the API
// error vocabulary. Handlers call it for errors they do not special-case.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows),
		errors.Is(err, service.ErrSectionNotFound),
		errors.Is(err, service.ErrUnknownRegistryNo),
		errors.Is(err, service.ErrScheduleNotFound),
		errors.Is(err, service.ErrExamScheduleNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)

	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrRecoveryFailed):
		response.Fail(c, http.StatusUnauthorized, response.ErrRecoveryFailed)
	case errors.Is(err, service.ErrSessionAlreadyActive):
		response.Fail(c, http.StatusConflict, response.ErrSessionActive)
	case errors.Is(err, service.ErrAccountExists),
		errors.Is(err, repository.ErrDuplicateAccount):
		response.Fail(c, http.StatusConflict, response.ErrAccountExists)

	case errors.Is(err, repository.ErrDuplicateEnrollment):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
	case errors.Is(err, service.ErrNotEnrolled):
		response.Fail(c, http.StatusNotFound, response.ErrNotEnrolled)

	case errors.Is(err, repository.ErrDuplicateUsername),
		errors.Is(err, repository.ErrDuplicateRole),
		errors.Is(err, repository.ErrDuplicateCourse),
		errors.Is(err, repository.ErrDuplicateParticular),
		errors.Is(err, repository.ErrDuplicateFeeStructure),
		errors.Is(err, repository.ErrDuplicateSectionAssignment):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, repository.ErrDuplicatePayrollRun):
		response.Fail(c, http.StatusConflict, response.ErrPayrollExists)
	case errors.Is(err, repository.ErrStudentAlreadyLinked):
		response.Fail(c, http.StatusConflict, response.ErrStudentHasParent)
	case errors.Is(err, repository.ErrCourseHasSections):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)

	case errors.Is(err, service.ErrScheduleConflict):
		response.Fail(c, http.StatusConflict, response.ErrScheduleConflict)
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
	case errors.Is(err, service.ErrLeaveNotPending),
		errors.Is(err, service.ErrRunNotDraft),
		errors.Is(err, service.ErrRecordNotOpen),
		errors.Is(err, service.ErrEmptyStructure):
		response.Fail(c, http.StatusBadRequest, response.ErrActionForbidden)
	case errors.Is(err, service.ErrNotOwnSection):
		response.Fail(c, http.StatusForbidden, response.ErrNotOwnSection)
	case errors.Is(err, service.ErrNotLinkedChild):
		response.Fail(c, http.StatusForbidden, response.ErrNotLinkedChild)

	case errors.Is(err, service.ErrNoFeeStructure):
		response.Fail(c, http.StatusNotFound, response.ErrNoFeeStructure)
	case errors.Is(err, service.ErrNoWorkloadRate):
		response.Fail(c, http.StatusBadRequest, response.ErrNoWorkloadRate)
	case errors.Is(err, service.ErrPaymentTooLarge):
		response.Fail(c, http.StatusBadRequest, response.ErrPaymentTooLarge)
	case errors.Is(err, service.ErrInvoiceNotOpen):
		response.Fail(c, http.StatusBadRequest, response.ErrInvoiceNotOpen)

	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// pathID parses a numeric path parameter, replying 400 on malformed input.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// pageParams reads the standard page/per_page query parameters.
func pageParams(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "10"))
	return page, perPage
}

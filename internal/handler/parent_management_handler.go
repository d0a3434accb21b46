package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
	"github.com/campushq/campus-backend/internal/validator"
)

// ParentManagementHandler handles the admin-side parent endpoints.
type ParentManagementHandler struct {
	parentService *service.ParentService
	authService   *service.AuthService
}

// NewParentManagementHandler creates a new ParentManagementHandler.
func NewParentManagementHandler(parentService *service.ParentService, authService *service.AuthService) *ParentManagementHandler {
	return &ParentManagementHandler{parentService: parentService, authService: authService}
}

// ListParents godoc
// GET /api/v1/admin/parents
func (h *ParentManagementHandler) ListParents(c *gin.Context) {
	page, perPage := pageParams(c)

	parents, pagination, err := h.parentService.ListParents(c.Request.Context(), page, perPage)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"parents": parents}, pagination)
}

// GetParent godoc
// GET /api/v1/admin/parents/:parent_id
func (h *ParentManagementHandler) GetParent(c *gin.Context) {
	id, ok := pathID(c, "parent_id")
	if !ok {
		return
	}

	parent, err := h.parentService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"parent": parent})
}

// FindByStudent godoc
// GET /api/v1/admin/students/:student_id/parent
func (h *ParentManagementHandler) FindByStudent(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	parent, err := h.parentService.GetByStudent(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"parent": parent})
}

// CreateParent godoc
// POST /api/v1/admin/parents
// Creates a parent, links the given students and opens a portal account.
// Without a password a temporary one is derived from the registry number.
func (h *ParentManagementHandler) CreateParent(c *gin.Context) {
	var req model.CreateParentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	parent, err := h.parentService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	body := gin.H{"parent": parent}
	if req.Password == "" {
		body["temp_password"] = service.TempParentPassword(parent.RegistryNo)
	}
	response.Success(c, http.StatusCreated, body)
}

// UpdateParent godoc
// PUT /api/v1/admin/parents/:parent_id
func (h *ParentManagementHandler) UpdateParent(c *gin.Context) {
	id, ok := pathID(c, "parent_id")
	if !ok {
		return
	}

	var req model.UpdateParentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	parent, err := h.parentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"parent": parent})
}

// DeleteParent godoc
// DELETE /api/v1/admin/parents/:parent_id
func (h *ParentManagementHandler) DeleteParent(c *gin.Context) {
	id, ok := pathID(c, "parent_id")
	if !ok {
		return
	}

	if err := h.parentService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "parent deleted"})
}

// LinkStudent godoc
// POST /api/v1/admin/parents/:parent_id/students
// Links a student; a student may have at most one parent.
func (h *ParentManagementHandler) LinkStudent(c *gin.Context) {
	id, ok := pathID(c, "parent_id")
	if !ok {
		return
	}

	var req model.LinkStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.parentService.LinkStudent(c.Request.Context(), id, req.StudentID); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "student linked"})
}

// UnlinkStudent godoc
// DELETE /api/v1/admin/parents/:parent_id/students/:student_id
func (h *ParentManagementHandler) UnlinkStudent(c *gin.Context) {
	id, ok := pathID(c, "parent_id")
	if !ok {
		return
	}
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	if err := h.parentService.UnlinkStudent(c.Request.Context(), id, studentID); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "student unlinked"})
}

// ResetPortalSession godoc
// POST /api/v1/admin/parents/:parent_id/reset-session
func (h *ParentManagementHandler) ResetPortalSession(c *gin.Context) {
	id, ok := pathID(c, "parent_id")
	if !ok {
		return
	}

	if _, err := h.parentService.GetByID(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	if err := h.authService.ResetPortalSession(c.Request.Context(), model.PortalRoleParent, id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "portal session reset"})
}

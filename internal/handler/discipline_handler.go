package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
	"github.com/campushq/campus-backend/internal/validator"
)

// DisciplineHandler handles discipline records and commendations.
type DisciplineHandler struct {
	disciplineService *service.DisciplineService
}

// NewDisciplineHandler creates a new DisciplineHandler.
func NewDisciplineHandler(disciplineService *service.DisciplineService) *DisciplineHandler {
	return &DisciplineHandler{disciplineService: disciplineService}
}

// Create godoc
// POST /api/v1/admin/discipline
func (h *DisciplineHandler) Create(c *gin.Context) {
	var req model.CreateDisciplineRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.disciplineService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"record": record})
}

// ListByStudent godoc
// GET /api/v1/admin/students/:student_id/discipline
func (h *DisciplineHandler) ListByStudent(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	records, err := h.disciplineService.ListByStudent(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"records": records})
}

// Resolve godoc
// POST /api/v1/admin/discipline/:record_id/resolve
// Closes an open record with resolution notes.
func (h *DisciplineHandler) Resolve(c *gin.Context) {
	id, ok := pathID(c, "record_id")
	if !ok {
		return
	}

	var req model.ResolveDisciplineRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.disciplineService.Resolve(c.Request.Context(), id, req.ResolutionNotes); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "record resolved"})
}

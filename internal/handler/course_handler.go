package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
	"github.com/campushq/campus-backend/internal/validator"
)

// CourseHandler handles course and section management endpoints.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// ListCourses godoc
// GET /api/v1/admin/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// CreateCourse godoc
// POST /api/v1/admin/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// DeleteCourse godoc
// DELETE /api/v1/admin/courses/:code
// Rejected while the course still has sections.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.courseService.DeleteCourse(c.Request.Context(), c.Param("code")); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "course deleted"})
}

// ListSections godoc
// GET /api/v1/admin/sections?course=BSIT
func (h *CourseHandler) ListSections(c *gin.Context) {
	sections, err := h.courseService.ListSections(c.Request.Context(), c.Query("course"))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sections": sections})
}

// CreateSection godoc
// POST /api/v1/admin/sections
// Opens the next sequential section for a course year.
func (h *CourseHandler) CreateSection(c *gin.Context) {
	var req model.CreateSectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	section, err := h.courseService.CreateSection(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"section": section})
}

// GetSection godoc
// GET /api/v1/admin/sections/:section
// Looks up a section by its COURSE-YEAR-SECTION key.
func (h *CourseHandler) GetSection(c *gin.Context) {
	key := c.Param("section")
	if !validator.ValidSectionKey(key) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidSection)
		return
	}

	section, err := h.courseService.GetSection(c.Request.Context(), key)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"section": section})
}

// AddSubject godoc
// POST /api/v1/admin/sections/subjects
// Attaches a subject to one section, or to every section of the course
// year when section_number is zero. Returns how many sections changed.
func (h *CourseHandler) AddSubject(c *gin.Context) {
	var req model.AddSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	updated, err := h.courseService.AddSubject(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":          "subject added to " + strconv.Itoa(updated) + " section(s)",
		"sections_updated": updated,
	})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
	"github.com/campushq/campus-backend/internal/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves spreadsheet exports of academic data.
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// SectionGradeSheet godoc
// GET /api/v1/admin/export/sections/:section/grades
// Downloads the section's grade sheet as an XLSX workbook.
func (h *ExportHandler) SectionGradeSheet(c *gin.Context) {
	key := c.Param("section")
	if !validator.ValidSectionKey(key) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidSection)
		return
	}

	data, filename, err := h.exportService.SectionGradeSheet(c.Request.Context(), key)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

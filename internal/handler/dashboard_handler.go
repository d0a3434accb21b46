package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
)

// DashboardHandler handles admin reporting endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
	feeService       *service.FeeService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService, feeService *service.FeeService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, feeService: feeService}
}

// GetSummary godoc
// GET /api/v1/admin/dashboard
// Returns headline counts, the student status split and pending leaves.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// GetFinancialSummary godoc
// GET /api/v1/admin/dashboard/financial
// Returns collected vs outstanding fees, invoice and payment counts,
// and total payroll expenses.
func (h *DashboardHandler) GetFinancialSummary(c *gin.Context) {
	summary, err := h.feeService.FinancialSummary(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"financial_summary": summary})
}

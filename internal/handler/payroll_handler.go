package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
	"github.com/campushq/campus-backend/internal/validator"
)

// PayrollHandler handles payroll configuration and fortnightly runs.
type PayrollHandler struct {
	payrollService *service.PayrollService
}

// NewPayrollHandler creates a new PayrollHandler.
func NewPayrollHandler(payrollService *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// ListWorkloadRates godoc
// GET /api/v1/admin/payroll/rates
func (h *PayrollHandler) ListWorkloadRates(c *gin.Context) {
	rates, err := h.payrollService.ListWorkloadRates(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rates": rates})
}

// SetWorkloadRate godoc
// PUT /api/v1/admin/payroll/rates
// Sets (or replaces) a subject's per-day teaching rate.
func (h *PayrollHandler) SetWorkloadRate(c *gin.Context) {
	var req model.SetWorkloadRateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.payrollService.SetWorkloadRate(c.Request.Context(), &req); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "workload rate set"})
}

// GetEarningsConfig godoc
// GET /api/v1/admin/payroll/earnings
func (h *PayrollHandler) GetEarningsConfig(c *gin.Context) {
	cfg, err := h.payrollService.GetEarningsConfig(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"earnings": cfg})
}

// UpdateEarningsConfig godoc
// PUT /api/v1/admin/payroll/earnings
func (h *PayrollHandler) UpdateEarningsConfig(c *gin.Context) {
	var req model.UpdateEarningsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	cfg, err := h.payrollService.UpdateEarnings(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"earnings": cfg})
}

// GetDeductionConfig godoc
// GET /api/v1/admin/payroll/deductions
func (h *PayrollHandler) GetDeductionConfig(c *gin.Context) {
	cfg, err := h.payrollService.GetDeductionConfig(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deductions": cfg})
}

// UpdateDeductionConfig godoc
// PUT /api/v1/admin/payroll/deductions
func (h *PayrollHandler) UpdateDeductionConfig(c *gin.Context) {
	var req model.UpdateDeductionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	cfg, err := h.payrollService.UpdateDeductions(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deductions": cfg})
}

// ListBonuses godoc
// GET /api/v1/admin/payroll/bonuses
func (h *PayrollHandler) ListBonuses(c *gin.Context) {
	bonuses, err := h.payrollService.ListBonuses(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bonuses": bonuses})
}

// CreateBonus godoc
// POST /api/v1/admin/payroll/bonuses
func (h *PayrollHandler) CreateBonus(c *gin.Context) {
	var req model.CreateBonusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	bonus, err := h.payrollService.CreateBonus(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"bonus": bonus})
}

// DeleteBonus godoc
// DELETE /api/v1/admin/payroll/bonuses/:bonus_id
func (h *PayrollHandler) DeleteBonus(c *gin.Context) {
	id, ok := pathID(c, "bonus_id")
	if !ok {
		return
	}

	if err := h.payrollService.DeleteBonus(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "bonus deleted"})
}

// CreateRun godoc
// POST /api/v1/admin/payroll/runs
// Opens a draft payroll run for a teacher and fortnight.
func (h *PayrollHandler) CreateRun(c *gin.Context) {
	var req model.CreatePayrollRunRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	run, err := h.payrollService.CreateRun(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"run": run})
}

// GetRun godoc
// GET /api/v1/admin/payroll/runs/:run_id
// Returns the run with its full earnings and deduction breakdown.
func (h *PayrollHandler) GetRun(c *gin.Context) {
	id, ok := pathID(c, "run_id")
	if !ok {
		return
	}

	run, err := h.payrollService.GetRun(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"run": run})
}

// ListRunsByTeacher godoc
// GET /api/v1/admin/payroll/teachers/:teacher_id/runs
func (h *PayrollHandler) ListRunsByTeacher(c *gin.Context) {
	id, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	runs, err := h.payrollService.ListRunsByTeacher(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"runs": runs})
}

// CalculateRun godoc
// POST /api/v1/admin/payroll/runs/:run_id/calculate
// Computes a draft run from days present, overtime and selected bonuses.
func (h *PayrollHandler) CalculateRun(c *gin.Context) {
	id, ok := pathID(c, "run_id")
	if !ok {
		return
	}

	var req model.CalculatePayrollRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	run, err := h.payrollService.Calculate(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"run": run})
}

// FinalizeRun godoc
// POST /api/v1/admin/payroll/runs/:run_id/finalize
// Marks a calculated draft as paid. Finalized runs are immutable.
func (h *PayrollHandler) FinalizeRun(c *gin.Context) {
	id, ok := pathID(c, "run_id")
	if !ok {
		return
	}

	run, err := h.payrollService.Finalize(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"run": run})
}

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

// FeeHandler handles particulars, fee structures, invoices and payments.
type FeeHandler struct {
	feeService *service.FeeService
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(feeService *service.FeeService) *FeeHandler {
	return &FeeHandler{feeService: feeService}
}

// structureKey parses the :code/:year pair shared by the structure routes.
func structureKey(c *gin.Context) (string, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 || year > 4 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return "", 0, false
	}
	return c.Param("code"), year, true
}

// ListParticulars godoc
// GET /api/v1/admin/fees/particulars
func (h *FeeHandler) ListParticulars(c *gin.Context) {
	particulars, err := h.feeService.ListParticulars(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"particulars": particulars})
}

// CreateParticular godoc
// POST /api/v1/admin/fees/particulars
func (h *FeeHandler) CreateParticular(c *gin.Context) {
	var req model.CreateParticularRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	particular, err := h.feeService.CreateParticular(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"particular": particular})
}

// UpdateParticular godoc
// PUT /api/v1/admin/fees/particulars/:name
func (h *FeeHandler) UpdateParticular(c *gin.Context) {
	var req model.UpdateParticularRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	particular, err := h.feeService.UpdateParticular(c.Request.Context(), c.Param("name"), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"particular": particular})
}

// DeleteParticular godoc
// DELETE /api/v1/admin/fees/particulars/:name
func (h *FeeHandler) DeleteParticular(c *gin.Context) {
	if err := h.feeService.DeleteParticular(c.Request.Context(), c.Param("name")); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "particular deleted"})
}

// CreateStructure godoc
// POST /api/v1/admin/fees/structures
func (h *FeeHandler) CreateStructure(c *gin.Context) {
	var req model.CreateFeeStructureRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	structure, err := h.feeService.CreateStructure(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"structure": structure})
}

// GetStructure godoc
// GET /api/v1/admin/fees/structures/:code/:year
// Returns the structure with its computed total and breakdown.
func (h *FeeHandler) GetStructure(c *gin.Context) {
	code, year, ok := structureKey(c)
	if !ok {
		return
	}

	structure, err := h.feeService.GetStructure(c.Request.Context(), code, year)
	if err != nil {
		failFromError(c, err)
		return
	}

	total, breakdown, err := h.feeService.StructureTotal(c.Request.Context(), structure)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"structure": structure,
		"total":     total,
		"breakdown": breakdown,
	})
}

// SetSubjectFee godoc
// PUT /api/v1/admin/fees/structures/:code/:year/subjects
func (h *FeeHandler) SetSubjectFee(c *gin.Context) {
	code, year, ok := structureKey(c)
	if !ok {
		return
	}

	var req model.SetSubjectFeeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.feeService.SetSubjectFee(c.Request.Context(), code, year, &req); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "subject fee set"})
}

// SelectParticular godoc
// POST /api/v1/admin/fees/structures/:code/:year/particulars
func (h *FeeHandler) SelectParticular(c *gin.Context) {
	code, year, ok := structureKey(c)
	if !ok {
		return
	}

	var req model.SelectParticularRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.feeService.SelectParticular(c.Request.Context(), code, year, req.Name); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "particular selected"})
}

// DeselectParticular godoc
// DELETE /api/v1/admin/fees/structures/:code/:year/particulars/:name
func (h *FeeHandler) DeselectParticular(c *gin.Context) {
	code, year, ok := structureKey(c)
	if !ok {
		return
	}

	if err := h.feeService.DeselectParticular(c.Request.Context(), code, year, c.Param("name")); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "particular deselected"})
}

// DeleteStructure godoc
// DELETE /api/v1/admin/fees/structures/:code/:year
func (h *FeeHandler) DeleteStructure(c *gin.Context) {
	code, year, ok := structureKey(c)
	if !ok {
		return
	}

	if err := h.feeService.DeleteStructure(c.Request.Context(), code, year); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "structure deleted"})
}

// GenerateInvoices godoc
// POST /api/v1/admin/fees/invoices/generate
// Issues one invoice per student of a section from its fee structure.
func (h *FeeHandler) GenerateInvoices(c *gin.Context) {
	var req model.GenerateInvoicesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	invoices, err := h.feeService.GenerateInvoices(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"invoices": invoices})
}

// CreateCustomInvoice godoc
// POST /api/v1/admin/fees/invoices
// Issues a one-off invoice for a single student.
func (h *FeeHandler) CreateCustomInvoice(c *gin.Context) {
	var req model.CreateCustomInvoiceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	invoice, err := h.feeService.CreateCustomInvoice(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"invoice": invoice})
}

// ListInvoices godoc
// GET /api/v1/admin/fees/invoices?student_id=&status=pending
func (h *FeeHandler) ListInvoices(c *gin.Context) {
	page, perPage := pageParams(c)

	var studentID *int
	if raw := c.Query("student_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		studentID = &id
	}

	var status *model.InvoiceStatus
	if raw := c.Query("status"); raw != "" {
		st := model.InvoiceStatus(raw)
		status = &st
	}

	invoices, pagination, err := h.feeService.ListInvoices(c.Request.Context(), studentID, status, page, perPage)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"invoices": invoices}, pagination)
}

// GetInvoice godoc
// GET /api/v1/admin/fees/invoices/:invoice_id
func (h *FeeHandler) GetInvoice(c *gin.Context) {
	id, ok := pathID(c, "invoice_id")
	if !ok {
		return
	}

	invoice, err := h.feeService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoice": invoice})
}

// UpdateInvoiceStatus godoc
// PUT /api/v1/admin/fees/invoices/:invoice_id/status
// Manually overrides an invoice's status; "paid" stamps the payment date.
func (h *FeeHandler) UpdateInvoiceStatus(c *gin.Context) {
	id, ok := pathID(c, "invoice_id")
	if !ok {
		return
	}

	var req model.UpdateInvoiceStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	invoice, err := h.feeService.UpdateInvoiceStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoice": invoice})
}

// RecordPayment godoc
// POST /api/v1/admin/fees/invoices/:invoice_id/payments
// Records a payment; settling the balance marks the invoice paid.
func (h *FeeHandler) RecordPayment(c *gin.Context) {
	id, ok := pathID(c, "invoice_id")
	if !ok {
		return
	}

	var req model.RecordPaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	payment, invoice, err := h.feeService.RecordPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment": payment, "invoice": invoice})
}

// ListPayments godoc
// GET /api/v1/admin/fees/invoices/:invoice_id/payments
func (h *FeeHandler) ListPayments(c *gin.Context) {
	id, ok := pathID(c, "invoice_id")
	if !ok {
		return
	}

	payments, err := h.feeService.ListPayments(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

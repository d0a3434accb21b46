package model

import "time"

// InvoiceStatus tracks an invoice's payment state.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// Particular is a named one-off fee item reusable across fee structures.
type Particular struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubjectFee is one subject line in a fee structure.
type SubjectFee struct {
	Subject string  `json:"subject"`
	Amount  float64 `json:"amount"`
}

// FeeStructure defines the fees charged per course and year.
type FeeStructure struct {
	ID          int          `json:"id"`
	CourseCode  string       `json:"course_code"`
	Year        int          `json:"year"`
	SubjectFees []SubjectFee `json:"subject_fees"`
	Particulars []string     `json:"particulars"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Invoice bills one student for a course-year fee total.
type Invoice struct {
	ID          int                `json:"id"`
	InvoiceNo   string             `json:"invoice_no"`
	StudentID   int                `json:"student_id"`
	CourseCode  string             `json:"course_code"`
	Year        int                `json:"year"`
	Amount      float64            `json:"amount"`
	DueDate     string             `json:"due_date"`
	IssuedDate  string             `json:"issued_date"`
	Status      InvoiceStatus      `json:"status"`
	PaymentDate *string            `json:"payment_date"`
	Breakdown   map[string]float64 `json:"breakdown"`
}

// Payment is one confirmed payment against an invoice.
type Payment struct {
	ID        int     `json:"id"`
	PaymentNo string  `json:"payment_no"`
	InvoiceID int     `json:"invoice_id"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Status    string  `json:"status"`
}

// CreateParticularRequest creates a reusable fee item.
type CreateParticularRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=120"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"max=500"`
}

// UpdateParticularRequest updates a fee item's amount or description.
type UpdateParticularRequest struct {
	Amount      *float64 `json:"amount" binding:"omitempty,gt=0"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
}

// CreateFeeStructureRequest starts an empty structure for a course year.
type CreateFeeStructureRequest struct {
	CourseCode string `json:"course_code" binding:"required,alphanum,min=2,max=16"`
	Year       int    `json:"year" binding:"required,min=1,max=4"`
}

// SetSubjectFeeRequest sets a subject's fee within a structure.
type SetSubjectFeeRequest struct {
	Subject string  `json:"subject" binding:"required,min=2,max=120"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
}

// SelectParticularRequest includes a particular in a structure.
type SelectParticularRequest struct {
	Name string `json:"name" binding:"required,min=2,max=120"`
}

// GenerateInvoicesRequest issues invoices for every student of a section.
type GenerateInvoicesRequest struct {
	Section string `json:"section" binding:"required,section"`
	DueDate string `json:"due_date" binding:"required,datetime=2006-01-02"`
}

// CreateCustomInvoiceRequest issues a one-off invoice for a single student.
type CreateCustomInvoiceRequest struct {
	StudentID int                `json:"student_id" binding:"required,min=1"`
	Amount    float64            `json:"amount" binding:"required,gt=0"`
	DueDate   string             `json:"due_date" binding:"required,datetime=2006-01-02"`
	Breakdown map[string]float64 `json:"breakdown" binding:"omitempty"`
}

// UpdateInvoiceStatusRequest overrides an invoice's payment state.
type UpdateInvoiceStatusRequest struct {
	Status InvoiceStatus `json:"status" binding:"required,oneof=pending paid overdue"`
}

// RecordPaymentRequest records a payment against an invoice.
type RecordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// FinancialSummary aggregates the fee ledger for reporting.
type FinancialSummary struct {
	TotalFeesCollected   float64 `json:"total_fees_collected"`
	OutstandingFees      float64 `json:"outstanding_fees"`
	TotalInvoices        int     `json:"total_invoices"`
	PaidInvoices         int     `json:"paid_invoices"`
	PendingInvoices      int     `json:"pending_invoices"`
	OverdueInvoices      int     `json:"overdue_invoices"`
	TotalPayments        int     `json:"total_payments"`
	TotalPayrollExpenses float64 `json:"total_payroll_expenses"`
}

package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/validator"
)

// Common fee errors.
var (
	ErrNoFeeStructure  = errors.New("no fee structure for this course and year")
	ErrPaymentTooLarge = errors.New("payment exceeds the remaining balance")
	ErrInvoiceNotOpen  = errors.New("invoice is not open for payment")
	ErrEmptyStructure  = errors.New("fee structure has no lines")
)

// FeeService handles particulars, fee structures, invoices and payments.
type FeeService struct {
	feeRepo       *repository.FeeRepository
	studentRepo   *repository.StudentRepository
	courseRepo    *repository.CourseRepository
	notifyService *NotificationService
}

// NewFeeService creates a new FeeService.
func NewFeeService(
	feeRepo *repository.FeeRepository,
	studentRepo *repository.StudentRepository,
	courseRepo *repository.CourseRepository,
	notifyService *NotificationService,
) *FeeService {
	return &FeeService{
		feeRepo:       feeRepo,
		studentRepo:   studentRepo,
		courseRepo:    courseRepo,
		notifyService: notifyService,
	}
}

// CreateParticular registers a reusable fee item.
func (s *FeeService) CreateParticular(ctx context.Context, req *model.CreateParticularRequest) (*model.Particular, error) {
	p := &model.Particular{Name: req.Name, Amount: req.Amount, Description: req.Description}
	if err := s.feeRepo.CreateParticular(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListParticulars retrieves all fee items.
func (s *FeeService) ListParticulars(ctx context.Context) ([]model.Particular, error) {
	particulars, err := s.feeRepo.ListParticulars(ctx)
	if err != nil {
		return nil, err
	}
	if particulars == nil {
		particulars = []model.Particular{}
	}
	return particulars, nil
}

// UpdateParticular modifies a fee item. Nil request fields keep the
// stored values.
func (s *FeeService) UpdateParticular(ctx context.Context, name string, req *model.UpdateParticularRequest) (*model.Particular, error) {
	p, err := s.feeRepo.GetParticularByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if req.Amount != nil {
		p.Amount = *req.Amount
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if err := s.feeRepo.UpdateParticular(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteParticular removes a fee item.
func (s *FeeService) DeleteParticular(ctx context.Context, name string) error {
	p, err := s.feeRepo.GetParticularByName(ctx, name)
	if err != nil {
		return err
	}
	return s.feeRepo.DeleteParticular(ctx, p.ID)
}

// CreateStructure starts an empty fee structure for a course year.
func (s *FeeService) CreateStructure(ctx context.Context, req *model.CreateFeeStructureRequest) (*model.FeeStructure, error) {
	if _, err := s.courseRepo.GetCourseByCode(ctx, req.CourseCode); err != nil {
		return nil, err
	}
	fs := &model.FeeStructure{CourseCode: req.CourseCode, Year: req.Year}
	if err := s.feeRepo.CreateStructure(ctx, fs); err != nil {
		return nil, err
	}
	return fs, nil
}

// GetStructure retrieves a structure with its lines.
func (s *FeeService) GetStructure(ctx context.Context, courseCode string, year int) (*model.FeeStructure, error) {
	fs, err := s.feeRepo.GetStructure(ctx, courseCode, year)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoFeeStructure
		}
		return nil, err
	}
	return fs, nil
}

// StructureTotal sums a structure's subject fees and selected particulars
// into an amount and an itemised breakdown.
func (s *FeeService) StructureTotal(ctx context.Context, fs *model.FeeStructure) (float64, map[string]float64, error) {
	breakdown := make(map[string]float64, len(fs.SubjectFees)+len(fs.Particulars))
	var total float64
	for _, f := range fs.SubjectFees {
		breakdown[f.Subject] = f.Amount
		total += f.Amount
	}
	for _, name := range fs.Particulars {
		p, err := s.feeRepo.GetParticularByName(ctx, name)
		if err != nil {
			return 0, nil, err
		}
		breakdown[p.Name] = p.Amount
		total += p.Amount
	}
	return total, breakdown, nil
}

// SetSubjectFee upserts a subject line.
func (s *FeeService) SetSubjectFee(ctx context.Context, courseCode string, year int, req *model.SetSubjectFeeRequest) error {
	fs, err := s.GetStructure(ctx, courseCode, year)
	if err != nil {
		return err
	}
	return s.feeRepo.SetSubjectFee(ctx, fs.ID, req.Subject, req.Amount)
}

// SelectParticular includes a fee item in a structure.
func (s *FeeService) SelectParticular(ctx context.Context, courseCode string, year int, name string) error {
	fs, err := s.GetStructure(ctx, courseCode, year)
	if err != nil {
		return err
	}
	p, err := s.feeRepo.GetParticularByName(ctx, name)
	if err != nil {
		return err
	}
	return s.feeRepo.SelectParticular(ctx, fs.ID, p.ID)
}

// DeselectParticular removes a fee item from a structure.
func (s *FeeService) DeselectParticular(ctx context.Context, courseCode string, year int, name string) error {
	fs, err := s.GetStructure(ctx, courseCode, year)
	if err != nil {
		return err
	}
	p, err := s.feeRepo.GetParticularByName(ctx, name)
	if err != nil {
		return err
	}
	return s.feeRepo.DeselectParticular(ctx, fs.ID, p.ID)
}

// DeleteStructure removes a structure and its lines.
func (s *FeeService) DeleteStructure(ctx context.Context, courseCode string, year int) error {
	fs, err := s.GetStructure(ctx, courseCode, year)
	if err != nil {
		return err
	}
	return s.feeRepo.DeleteStructure(ctx, fs.ID)
}

// GenerateInvoices issues structure-based invoices for every student of a
// section. Returns the created invoices.
func (s *FeeService) GenerateInvoices(ctx context.Context, req *model.GenerateInvoicesRequest) ([]model.Invoice, error) {
	course, year, number, err := validator.SplitSectionKey(req.Section)
	if err != nil {
		return nil, ErrSectionNotFound
	}
	section, err := s.courseRepo.GetSectionByKey(ctx, course, year, number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}

	fs, err := s.GetStructure(ctx, course, year)
	if err != nil {
		return nil, err
	}
	amount, breakdown, err := s.StructureTotal(ctx, fs)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, ErrEmptyStructure
	}

	students, err := s.studentRepo.ListBySection(ctx, section.ID)
	if err != nil {
		return nil, err
	}

	invoices := make([]model.Invoice, 0, len(students))
	for i := range students {
		inv := model.Invoice{
			StudentID:  students[i].ID,
			CourseCode: course,
			Year:       year,
			Amount:     amount,
			DueDate:    req.DueDate,
			Breakdown:  breakdown,
		}
		if err := s.feeRepo.CreateInvoice(ctx, &inv); err != nil {
			return nil, err
		}
		if s.notifyService != nil {
			if err := s.notifyService.NotifyInvoice(ctx, &students[i], &inv); err != nil {
				log.Warn().Err(err).Str("invoice_no", inv.InvoiceNo).Msg("Invoice notice not queued")
			}
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// CreateCustomInvoice issues a one-off invoice for a single student.
func (s *FeeService) CreateCustomInvoice(ctx context.Context, req *model.CreateCustomInvoiceRequest) (*model.Invoice, error) {
	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	course, year, _, err := validator.SplitSectionKey(student.SectionKey)
	if err != nil {
		return nil, ErrSectionNotFound
	}

	breakdown := req.Breakdown
	if breakdown == nil {
		breakdown = map[string]float64{"Custom charge": req.Amount}
	}
	inv := &model.Invoice{
		StudentID:  student.ID,
		CourseCode: course,
		Year:       year,
		Amount:     req.Amount,
		DueDate:    req.DueDate,
		Breakdown:  breakdown,
	}
	if err := s.feeRepo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}
	if s.notifyService != nil {
		if err := s.notifyService.NotifyInvoice(ctx, student, inv); err != nil {
			log.Warn().Err(err).Str("invoice_no", inv.InvoiceNo).Msg("Invoice notice not queued")
		}
	}
	return inv, nil
}

// GetInvoice retrieves one invoice.
func (s *FeeService) GetInvoice(ctx context.Context, id int) (*model.Invoice, error) {
	return s.feeRepo.GetInvoice(ctx, id)
}

// UpdateInvoiceStatus overrides an invoice's status, for manual
// corrections outside the payment flow.
func (s *FeeService) UpdateInvoiceStatus(ctx context.Context, invoiceID int, status model.InvoiceStatus) (*model.Invoice, error) {
	updated, err := s.feeRepo.UpdateInvoiceStatus(ctx, invoiceID, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, pgx.ErrNoRows
	}
	return s.feeRepo.GetInvoice(ctx, invoiceID)
}

// ListInvoices retrieves invoices with pagination and optional filters.
func (s *FeeService) ListInvoices(ctx context.Context, studentID *int, status *model.InvoiceStatus, page, perPage int) ([]model.Invoice, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}

	invoices, total, err := s.feeRepo.ListInvoices(ctx, studentID, status, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if invoices == nil {
		invoices = []model.Invoice{}
	}

	pagination := response.NewPagination(page, perPage, total)
	return invoices, pagination, nil
}

// RecordPayment records a payment against an open invoice. A payment may
// not exceed the remaining balance; when the balance reaches zero the
// invoice becomes paid.
func (s *FeeService) RecordPayment(ctx context.Context, invoiceID int, amount float64) (*model.Payment, *model.Invoice, error) {
	inv, err := s.feeRepo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if inv.Status == model.InvoicePaid {
		return nil, nil, ErrInvoiceNotOpen
	}

	paid, err := s.feeRepo.SumPayments(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	remaining := inv.Amount - paid
	if amount > remaining+0.005 {
		return nil, nil, ErrPaymentTooLarge
	}

	settled := amount >= remaining-0.005
	p := &model.Payment{InvoiceID: invoiceID, Amount: amount}
	if err := s.feeRepo.CreatePayment(ctx, p, settled); err != nil {
		return nil, nil, err
	}

	inv, err = s.feeRepo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	return p, inv, nil
}

// ListPayments retrieves the payments recorded against an invoice.
func (s *FeeService) ListPayments(ctx context.Context, invoiceID int) ([]model.Payment, error) {
	if _, err := s.feeRepo.GetInvoice(ctx, invoiceID); err != nil {
		return nil, err
	}
	payments, err := s.feeRepo.ListPayments(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	return payments, nil
}

// Balance aggregates a student's invoices into outstanding totals.
func (s *FeeService) Balance(ctx context.Context, studentID int) (invoices []model.Invoice, totalBilled, totalPaid float64, err error) {
	invoices, _, err = s.feeRepo.ListInvoices(ctx, &studentID, nil, 1000, 0)
	if err != nil {
		return nil, 0, 0, err
	}
	if invoices == nil {
		invoices = []model.Invoice{}
	}
	for _, inv := range invoices {
		totalBilled += inv.Amount
		paid, err := s.feeRepo.SumPayments(ctx, inv.ID)
		if err != nil {
			return nil, 0, 0, err
		}
		totalPaid += paid
	}
	return invoices, totalBilled, totalPaid, nil
}

// FinancialSummary aggregates the fee and payroll ledgers for reporting.
func (s *FeeService) FinancialSummary(ctx context.Context) (*model.FinancialSummary, error) {
	return s.feeRepo.GetFinancialSummary(ctx)
}

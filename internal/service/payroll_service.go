package service

import (
	"context"
	"errors"

	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/repository"
)

// ErrRunNotDraft is returned when a paid run is recalculated or finalized
// again.
var ErrRunNotDraft = errors.New("payroll run is not a draft")

// PayrollService handles payroll configuration and fortnightly runs.
type PayrollService struct {
	payrollRepo *repository.PayrollRepository
	teacherRepo *repository.TeacherRepository
}

// NewPayrollService creates a new PayrollService.
func NewPayrollService(payrollRepo *repository.PayrollRepository, teacherRepo *repository.TeacherRepository) *PayrollService {
	return &PayrollService{payrollRepo: payrollRepo, teacherRepo: teacherRepo}
}

// SetWorkloadRate upserts a subject's daily teaching rate.
func (s *PayrollService) SetWorkloadRate(ctx context.Context, req *model.SetWorkloadRateRequest) error {
	return s.payrollRepo.SetWorkloadRate(ctx, req.Subject, req.RatePerDay)
}

// ListWorkloadRates retrieves all subject rates.
func (s *PayrollService) ListWorkloadRates(ctx context.Context) ([]model.WorkloadRate, error) {
	rates, err := s.payrollRepo.ListWorkloadRates(ctx)
	if err != nil {
		return nil, err
	}
	if rates == nil {
		rates = []model.WorkloadRate{}
	}
	return rates, nil
}

// GetEarningsConfig retrieves the earnings parameters.
func (s *PayrollService) GetEarningsConfig(ctx context.Context) (*model.EarningsConfig, error) {
	return s.payrollRepo.GetEarningsConfig(ctx)
}

// UpdateEarnings stores the earnings parameters. Nil fields keep the
// stored values.
func (s *PayrollService) UpdateEarnings(ctx context.Context, req *model.UpdateEarningsRequest) (*model.EarningsConfig, error) {
	cfg, err := s.payrollRepo.GetEarningsConfig(ctx)
	if err != nil {
		return nil, err
	}
	if req.BaseSalary != nil {
		cfg.BaseSalary = *req.BaseSalary
	}
	if req.OvertimeRate != nil {
		cfg.OvertimeRate = *req.OvertimeRate
	}
	if err := s.payrollRepo.UpdateEarningsConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetDeductionConfig retrieves the deduction parameters.
func (s *PayrollService) GetDeductionConfig(ctx context.Context) (*model.DeductionConfig, error) {
	return s.payrollRepo.GetDeductionConfig(ctx)
}

// UpdateDeductions stores the deduction parameters. Nil fields keep the
// stored values.
func (s *PayrollService) UpdateDeductions(ctx context.Context, req *model.UpdateDeductionsRequest) (*model.DeductionConfig, error) {
	cfg, err := s.payrollRepo.GetDeductionConfig(ctx)
	if err != nil {
		return nil, err
	}
	if req.TaxRate != nil {
		cfg.TaxRate = *req.TaxRate
	}
	if req.SSSRate != nil {
		cfg.SSSRate = *req.SSSRate
	}
	if req.AbsenceDeduction != nil {
		cfg.AbsenceDeduction = *req.AbsenceDeduction
	}
	if err := s.payrollRepo.UpdateDeductionConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CreateBonus registers a selectable bonus.
func (s *PayrollService) CreateBonus(ctx context.Context, req *model.CreateBonusRequest) (*model.Bonus, error) {
	b := &model.Bonus{Name: req.Name, Amount: req.Amount}
	if err := s.payrollRepo.CreateBonus(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBonuses retrieves all bonuses.
func (s *PayrollService) ListBonuses(ctx context.Context) ([]model.Bonus, error) {
	bonuses, err := s.payrollRepo.ListBonuses(ctx)
	if err != nil {
		return nil, err
	}
	if bonuses == nil {
		bonuses = []model.Bonus{}
	}
	return bonuses, nil
}

// DeleteBonus removes a bonus.
func (s *PayrollService) DeleteBonus(ctx context.Context, id int) error {
	return s.payrollRepo.DeleteBonus(ctx, id)
}

// CreateRun opens a draft run for a teacher and fortnight. One run per
// teacher and period.
func (s *PayrollService) CreateRun(ctx context.Context, req *model.CreatePayrollRunRequest) (*model.PayrollRun, error) {
	if _, err := s.teacherRepo.GetByID(ctx, req.TeacherID); err != nil {
		return nil, err
	}
	run := &model.PayrollRun{TeacherID: req.TeacherID, PayoutPeriod: req.PayoutPeriod}
	if err := s.payrollRepo.CreateRun(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// GetRun retrieves one payroll run.
func (s *PayrollService) GetRun(ctx context.Context, id int) (*model.PayrollRun, error) {
	return s.payrollRepo.GetRun(ctx, id)
}

// ListRunsByTeacher retrieves a teacher's payroll history.
func (s *PayrollService) ListRunsByTeacher(ctx context.Context, teacherID int) ([]model.PayrollRun, error) {
	if _, err := s.teacherRepo.GetByID(ctx, teacherID); err != nil {
		return nil, err
	}
	runs, err := s.payrollRepo.ListRunsByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if runs == nil {
		runs = []model.PayrollRun{}
	}
	return runs, nil
}

// Calculate computes a draft run from the supplied inputs and the current
// rates and configs, and stores the figures.
func (s *PayrollService) Calculate(ctx context.Context, runID int, req *model.CalculatePayrollRequest) (*model.PayrollRun, error) {
	run, err := s.payrollRepo.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.PaymentStatus != "draft" {
		return nil, ErrRunNotDraft
	}

	teacher, err := s.teacherRepo.GetByID(ctx, run.TeacherID)
	if err != nil {
		return nil, err
	}
	rates, err := s.payrollRepo.GetRatesForSubjects(ctx, teacher.Subjects)
	if err != nil {
		return nil, err
	}
	earnings, err := s.payrollRepo.GetEarningsConfig(ctx)
	if err != nil {
		return nil, err
	}
	deductions, err := s.payrollRepo.GetDeductionConfig(ctx)
	if err != nil {
		return nil, err
	}
	bonusTotal, err := s.payrollRepo.SumBonuses(ctx, req.BonusIDs)
	if err != nil {
		return nil, err
	}

	run.SelectedBonusIDs = req.BonusIDs
	if run.SelectedBonusIDs == nil {
		run.SelectedBonusIDs = []int{}
	}
	if err := ComputePayroll(run, PayrollInputs{
		DaysPresent:   req.DaysPresent,
		OvertimeHours: req.OvertimeHours,
		SubjectRates:  rates,
		Subjects:      teacher.Subjects,
		BonusTotal:    bonusTotal,
		Earnings:      *earnings,
		Deductions:    *deductions,
	}); err != nil {
		return nil, err
	}

	if err := s.payrollRepo.SaveCalculation(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// Finalize marks a draft run as paid.
func (s *PayrollService) Finalize(ctx context.Context, runID int) (*model.PayrollRun, error) {
	done, err := s.payrollRepo.FinalizeRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, ErrRunNotDraft
	}
	return s.payrollRepo.GetRun(ctx, runID)
}

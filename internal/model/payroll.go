package model

import "time"

// FortnightDays is the length of a payout period in days.
const FortnightDays = 14

// WorkloadRate is the per-day teaching rate for one subject.
type WorkloadRate struct {
	Subject    string  `json:"subject"`
	RatePerDay float64 `json:"rate_per_day"`
}

// Bonus is a named discretionary earning selectable per payroll run.
type Bonus struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// EarningsConfig holds college-wide earning parameters.
type EarningsConfig struct {
	BaseSalary   float64 `json:"base_salary"`
	OvertimeRate float64 `json:"overtime_rate"` // Multiplier, default 1.5
}

// DeductionConfig holds college-wide deduction parameters.
type DeductionConfig struct {
	TaxRate          float64 `json:"tax_rate"`          // Percent of gross
	SSSRate          float64 `json:"sss_rate"`          // Percent of gross
	AbsenceDeduction float64 `json:"absence_deduction"` // Per absent day
}

// PayrollRun is one teacher's payroll for one fortnight.
type PayrollRun struct {
	ID           int    `json:"id"`
	PayrollNo    string `json:"payroll_no"`
	TeacherID    int    `json:"teacher_id"`
	PayoutPeriod string `json:"payout_period"`

	DaysPresent      int     `json:"days_present"`
	OvertimeHours    float64 `json:"overtime_hours"`
	SelectedBonusIDs []int   `json:"selected_bonus_ids"`

	BaseSalary       float64 `json:"base_salary"`
	WorkloadEarnings float64 `json:"workload_earnings"`
	BonusAmount      float64 `json:"bonus_amount"`
	OvertimeEarnings float64 `json:"overtime_earnings"`
	GrossSalary      float64 `json:"gross_salary"`

	TaxDeduction     float64 `json:"tax_deduction"`
	SSSDeduction     float64 `json:"sss_deduction"`
	AbsenceDeduction float64 `json:"absence_deduction"`
	TotalDeductions  float64 `json:"total_deductions"`

	NetSalary     float64   `json:"net_salary"`
	PaymentStatus string    `json:"payment_status"`
	PayoutDate    *string   `json:"payout_date"`
	CreatedAt     time.Time `json:"created_at"`
}

// SetWorkloadRateRequest sets a subject's daily teaching rate.
type SetWorkloadRateRequest struct {
	Subject    string  `json:"subject" binding:"required,min=2,max=120"`
	RatePerDay float64 `json:"rate_per_day" binding:"required,gt=0"`
}

// UpdateEarningsRequest updates the earnings configuration.
type UpdateEarningsRequest struct {
	BaseSalary   *float64 `json:"base_salary" binding:"omitempty,min=0"`
	OvertimeRate *float64 `json:"overtime_rate" binding:"omitempty,gt=0"`
}

// UpdateDeductionsRequest updates the deduction configuration.
type UpdateDeductionsRequest struct {
	TaxRate          *float64 `json:"tax_rate" binding:"omitempty,min=0"`
	SSSRate          *float64 `json:"sss_rate" binding:"omitempty,min=0"`
	AbsenceDeduction *float64 `json:"absence_deduction" binding:"omitempty,min=0"`
}

// CreateBonusRequest creates a selectable bonus.
type CreateBonusRequest struct {
	Name   string  `json:"name" binding:"required,min=2,max=120"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// CreatePayrollRunRequest opens a payroll run for a teacher and period.
type CreatePayrollRunRequest struct {
	TeacherID    int    `json:"teacher_id" binding:"required,min=1"`
	PayoutPeriod string `json:"payout_period" binding:"required,min=4,max=40"`
}

// CalculatePayrollRequest supplies the inputs for computing a run.
type CalculatePayrollRequest struct {
	DaysPresent   int     `json:"days_present" binding:"min=0,max=14"`
	OvertimeHours float64 `json:"overtime_hours" binding:"min=0"`
	BonusIDs      []int   `json:"bonus_ids" binding:"omitempty,dive,min=1"`
}

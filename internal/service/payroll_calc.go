package service

import (
	"errors"
	"fmt"

	"github.com/campushq/campus-backend/internal/model"
)

// ErrNoWorkloadRate is returned when a teacher teaches a subject that has
// no configured daily rate. The run cannot be priced until the rate is set.
var ErrNoWorkloadRate = errors.New("no workload rate set for subject")

// Standard working hours per day used for the overtime hourly rate.
const workHoursPerDay = 8

// PayrollInputs gathers everything needed to compute one fortnightly run.
type PayrollInputs struct {
	DaysPresent   int
	OvertimeHours float64
	SubjectRates  map[string]float64 // Per-day rate for each taught subject
	Subjects      []string
	BonusTotal    float64
	Earnings      model.EarningsConfig
	Deductions    model.DeductionConfig
}

// ComputePayroll fills a run's earnings and deduction figures from its
// inputs. Workload pays the per-day rate of every taught subject for each
// day present. Overtime pays an hourly slice of the fortnightly base
// salary times the overtime multiplier. Tax and SSS apply to gross;
// absences deduct a flat rate per missed day of the fortnight.
func ComputePayroll(run *model.PayrollRun, in PayrollInputs) error {
	var ratePerDay float64
	for _, subject := range in.Subjects {
		rate, ok := in.SubjectRates[subject]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNoWorkloadRate, subject)
		}
		ratePerDay += rate
	}

	run.DaysPresent = in.DaysPresent
	run.OvertimeHours = in.OvertimeHours
	run.BaseSalary = in.Earnings.BaseSalary
	run.WorkloadEarnings = round2(float64(in.DaysPresent) * ratePerDay)
	run.BonusAmount = round2(in.BonusTotal)

	hourlyRate := in.Earnings.BaseSalary / (workHoursPerDay * model.FortnightDays)
	run.OvertimeEarnings = round2(in.OvertimeHours * hourlyRate * in.Earnings.OvertimeRate)

	run.GrossSalary = round2(run.BaseSalary + run.WorkloadEarnings + run.BonusAmount + run.OvertimeEarnings)

	run.TaxDeduction = round2(run.GrossSalary * in.Deductions.TaxRate / 100)
	run.SSSDeduction = round2(run.GrossSalary * in.Deductions.SSSRate / 100)
	daysAbsent := model.FortnightDays - in.DaysPresent
	if daysAbsent < 0 {
		daysAbsent = 0
	}
	run.AbsenceDeduction = round2(float64(daysAbsent) * in.Deductions.AbsenceDeduction)
	run.TotalDeductions = round2(run.TaxDeduction + run.SSSDeduction + run.AbsenceDeduction)

	run.NetSalary = round2(run.GrossSalary - run.TotalDeductions)
	return nil
}

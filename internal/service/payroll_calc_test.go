package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/campus-backend/internal/model"
)

func baseInputs() PayrollInputs {
	return PayrollInputs{
		DaysPresent:   14,
		OvertimeHours: 0,
		SubjectRates: map[string]float64{
			"Algebra":  500,
			"Geometry": 300,
		},
		Subjects: []string{"Algebra", "Geometry"},
		Earnings: model.EarningsConfig{BaseSalary: 11200, OvertimeRate: 1.5},
		Deductions: model.DeductionConfig{
			TaxRate:          10,
			SSSRate:          5,
			AbsenceDeduction: 400,
		},
	}
}

func TestComputePayrollFullAttendance(t *testing.T) {
	run := &model.PayrollRun{}
	require.NoError(t, ComputePayroll(run, baseInputs()))

	// Workload: 14 days * (500 + 300) = 11200
	assert.Equal(t, 11200.0, run.WorkloadEarnings)
	assert.Equal(t, 0.0, run.OvertimeEarnings)
	assert.Equal(t, 22400.0, run.GrossSalary)

	// Tax 10% and SSS 5% of gross, no absences.
	assert.Equal(t, 2240.0, run.TaxDeduction)
	assert.Equal(t, 1120.0, run.SSSDeduction)
	assert.Equal(t, 0.0, run.AbsenceDeduction)
	assert.Equal(t, 3360.0, run.TotalDeductions)
	assert.Equal(t, 19040.0, run.NetSalary)
}

func TestComputePayrollOvertime(t *testing.T) {
	in := baseInputs()
	in.OvertimeHours = 10

	run := &model.PayrollRun{}
	require.NoError(t, ComputePayroll(run, in))

	// Hourly rate: 11200 / (8 * 14) = 100. Overtime: 10 * 100 * 1.5 = 1500.
	assert.Equal(t, 1500.0, run.OvertimeEarnings)
	assert.Equal(t, 23900.0, run.GrossSalary)
}

func TestComputePayrollAbsences(t *testing.T) {
	in := baseInputs()
	in.DaysPresent = 10

	run := &model.PayrollRun{}
	require.NoError(t, ComputePayroll(run, in))

	// Workload shrinks with attendance; 4 missed days deduct 400 each.
	assert.Equal(t, 8000.0, run.WorkloadEarnings)
	assert.Equal(t, 1600.0, run.AbsenceDeduction)
}

func TestComputePayrollBonuses(t *testing.T) {
	in := baseInputs()
	in.BonusTotal = 2500

	run := &model.PayrollRun{}
	require.NoError(t, ComputePayroll(run, in))

	assert.Equal(t, 2500.0, run.BonusAmount)
	assert.Equal(t, 24900.0, run.GrossSalary)
}

func TestComputePayrollRateOnlyForTaughtSubjects(t *testing.T) {
	in := baseInputs()
	in.Subjects = []string{"Algebra"}

	run := &model.PayrollRun{}
	require.NoError(t, ComputePayroll(run, in))

	assert.Equal(t, 7000.0, run.WorkloadEarnings)
}

func TestComputePayrollMissingWorkloadRate(t *testing.T) {
	in := baseInputs()
	in.Subjects = []string{"Algebra", "Calculus"}

	run := &model.PayrollRun{}
	err := ComputePayroll(run, in)

	require.ErrorIs(t, err, ErrNoWorkloadRate)
	assert.Contains(t, err.Error(), "Calculus")
}

func TestComputePayrollZeroRateIsNotMissing(t *testing.T) {
	in := baseInputs()
	in.SubjectRates["Geometry"] = 0

	run := &model.PayrollRun{}
	require.NoError(t, ComputePayroll(run, in))

	assert.Equal(t, 7000.0, run.WorkloadEarnings)
}

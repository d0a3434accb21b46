package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-backend/internal/model"
)

var ErrDuplicatePayrollRun = errors.New("payroll run already exists for this teacher and period")

// PayrollRepository handles payroll configuration and run data access.
type PayrollRepository struct {
	pool *pgxpool.Pool
}

// NewPayrollRepository creates a new PayrollRepository.
func NewPayrollRepository(pool *pgxpool.Pool) *PayrollRepository {
	return &PayrollRepository{pool: pool}
}

// SetWorkloadRate upserts a subject's daily rate.
func (r *PayrollRepository) SetWorkloadRate(ctx context.Context, subject string, rate float64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO workload_rates (subject, rate_per_day) VALUES ($1, $2)
		 ON CONFLICT (subject) DO UPDATE SET rate_per_day = EXCLUDED.rate_per_day`,
		subject, rate,
	)
	return err
}

// ListWorkloadRates retrieves all subject rates.
func (r *PayrollRepository) ListWorkloadRates(ctx context.Context) ([]model.WorkloadRate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT subject, rate_per_day FROM workload_rates ORDER BY subject`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []model.WorkloadRate
	for rows.Next() {
		var w model.WorkloadRate
		if err := rows.Scan(&w.Subject, &w.RatePerDay); err != nil {
			return nil, err
		}
		rates = append(rates, w)
	}
	return rates, rows.Err()
}

// GetRatesForSubjects returns the per-day rates for the given subjects.
// Subjects without a configured rate are absent from the map.
func (r *PayrollRepository) GetRatesForSubjects(ctx context.Context, subjects []string) (map[string]float64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT subject, rate_per_day FROM workload_rates WHERE subject = ANY($1)`, subjects)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rates := make(map[string]float64)
	for rows.Next() {
		var subject string
		var rate float64
		if err := rows.Scan(&subject, &rate); err != nil {
			return nil, err
		}
		rates[subject] = rate
	}
	return rates, rows.Err()
}

// GetEarningsConfig retrieves the college-wide earnings parameters.
func (r *PayrollRepository) GetEarningsConfig(ctx context.Context) (*model.EarningsConfig, error) {
	c := &model.EarningsConfig{}
	err := r.pool.QueryRow(ctx,
		`SELECT base_salary, overtime_rate FROM earnings_config WHERE id = 1`,
	).Scan(&c.BaseSalary, &c.OvertimeRate)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateEarningsConfig stores the earnings parameters.
func (r *PayrollRepository) UpdateEarningsConfig(ctx context.Context, c *model.EarningsConfig) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE earnings_config SET base_salary = $1, overtime_rate = $2 WHERE id = 1`,
		c.BaseSalary, c.OvertimeRate,
	)
	return err
}

// GetDeductionConfig retrieves the college-wide deduction parameters.
func (r *PayrollRepository) GetDeductionConfig(ctx context.Context) (*model.DeductionConfig, error) {
	c := &model.DeductionConfig{}
	err := r.pool.QueryRow(ctx,
		`SELECT tax_rate, sss_rate, absence_deduction FROM deduction_config WHERE id = 1`,
	).Scan(&c.TaxRate, &c.SSSRate, &c.AbsenceDeduction)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateDeductionConfig stores the deduction parameters.
func (r *PayrollRepository) UpdateDeductionConfig(ctx context.Context, c *model.DeductionConfig) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE deduction_config SET tax_rate = $1, sss_rate = $2, absence_deduction = $3 WHERE id = 1`,
		c.TaxRate, c.SSSRate, c.AbsenceDeduction,
	)
	return err
}

// CreateBonus inserts a selectable bonus.
func (r *PayrollRepository) CreateBonus(ctx context.Context, b *model.Bonus) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO bonuses (name, amount) VALUES ($1, $2) RETURNING id`,
		b.Name, b.Amount,
	).Scan(&b.ID)
}

// ListBonuses retrieves all bonuses.
func (r *PayrollRepository) ListBonuses(ctx context.Context) ([]model.Bonus, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, amount FROM bonuses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bonuses []model.Bonus
	for rows.Next() {
		var b model.Bonus
		if err := rows.Scan(&b.ID, &b.Name, &b.Amount); err != nil {
			return nil, err
		}
		bonuses = append(bonuses, b)
	}
	return bonuses, rows.Err()
}

// SumBonuses totals the amounts of the given bonus IDs.
func (r *PayrollRepository) SumBonuses(ctx context.Context, ids []int) (float64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var sum float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM bonuses WHERE id = ANY($1)`, ids,
	).Scan(&sum)
	return sum, err
}

// DeleteBonus removes a bonus.
func (r *PayrollRepository) DeleteBonus(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM bonuses WHERE id = $1`, id)
	return err
}

const payrollColumns = `id, payroll_no, teacher_id, payout_period,
	days_present, overtime_hours, selected_bonus_ids,
	base_salary, workload_earnings, bonus_amount, overtime_earnings, gross_salary,
	tax_deduction, sss_deduction, absence_deduction, total_deductions,
	net_salary, payment_status, to_char(payout_date, 'YYYY-MM-DD'), created_at`

func scanPayrollRun(row interface{ Scan(...interface{}) error }) (*model.PayrollRun, error) {
	run := &model.PayrollRun{}
	err := row.Scan(&run.ID, &run.PayrollNo, &run.TeacherID, &run.PayoutPeriod,
		&run.DaysPresent, &run.OvertimeHours, &run.SelectedBonusIDs,
		&run.BaseSalary, &run.WorkloadEarnings, &run.BonusAmount, &run.OvertimeEarnings, &run.GrossSalary,
		&run.TaxDeduction, &run.SSSDeduction, &run.AbsenceDeduction, &run.TotalDeductions,
		&run.NetSalary, &run.PaymentStatus, &run.PayoutDate, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// CreateRun opens a draft payroll run for a teacher and period.
func (r *PayrollRepository) CreateRun(ctx context.Context, run *model.PayrollRun) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO payroll_runs (payroll_no, teacher_id, payout_period)
		 VALUES ('PAYROLL-' || lpad(nextval('payroll_no_seq')::text, 6, '0'), $1, $2)
		 RETURNING id, payroll_no, payment_status, created_at`,
		run.TeacherID, run.PayoutPeriod,
	).Scan(&run.ID, &run.PayrollNo, &run.PaymentStatus, &run.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePayrollRun
		}
		return err
	}
	return nil
}

// GetRun retrieves one payroll run.
func (r *PayrollRepository) GetRun(ctx context.Context, id int) (*model.PayrollRun, error) {
	return scanPayrollRun(r.pool.QueryRow(ctx,
		`SELECT `+payrollColumns+` FROM payroll_runs WHERE id = $1`, id))
}

// ListRunsByTeacher retrieves a teacher's payroll history, newest first.
func (r *PayrollRepository) ListRunsByTeacher(ctx context.Context, teacherID int) ([]model.PayrollRun, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+payrollColumns+` FROM payroll_runs WHERE teacher_id = $1 ORDER BY created_at DESC`,
		teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.PayrollRun
	for rows.Next() {
		run, err := scanPayrollRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// SaveCalculation stores a run's inputs and computed figures.
func (r *PayrollRepository) SaveCalculation(ctx context.Context, run *model.PayrollRun) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE payroll_runs SET
			days_present = $1, overtime_hours = $2, selected_bonus_ids = $3,
			base_salary = $4, workload_earnings = $5, bonus_amount = $6,
			overtime_earnings = $7, gross_salary = $8,
			tax_deduction = $9, sss_deduction = $10, absence_deduction = $11,
			total_deductions = $12, net_salary = $13
		 WHERE id = $14`,
		run.DaysPresent, run.OvertimeHours, run.SelectedBonusIDs,
		run.BaseSalary, run.WorkloadEarnings, run.BonusAmount,
		run.OvertimeEarnings, run.GrossSalary,
		run.TaxDeduction, run.SSSDeduction, run.AbsenceDeduction,
		run.TotalDeductions, run.NetSalary, run.ID,
	)
	return err
}

// FinalizeRun marks a draft run as paid. Returns false when the run does
// not exist or was already paid.
func (r *PayrollRepository) FinalizeRun(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE payroll_runs SET payment_status = 'paid', payout_date = CURRENT_DATE
		 WHERE id = $1 AND payment_status = 'draft'`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

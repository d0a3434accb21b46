package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushq/campus-backend/internal/model"
)

var (
	ErrDuplicateParticular   = errors.New("particular with this name already exists")
	ErrDuplicateFeeStructure = errors.New("fee structure already exists for this course and year")
)

// FeeRepository handles particulars, fee structures, invoices and payments.
type FeeRepository struct {
	pool *pgxpool.Pool
}

// NewFeeRepository creates a new FeeRepository.
func NewFeeRepository(pool *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{pool: pool}
}

// CreateParticular inserts a reusable fee item.
func (r *FeeRepository) CreateParticular(ctx context.Context, p *model.Particular) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO particulars (name, amount, description) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		p.Name, p.Amount, p.Description,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateParticular
		}
		return err
	}
	return nil
}

// GetParticularByName retrieves a fee item by its unique name.
func (r *FeeRepository) GetParticularByName(ctx context.Context, name string) (*model.Particular, error) {
	p := &model.Particular{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, amount, description, created_at FROM particulars WHERE name = $1`, name,
	).Scan(&p.ID, &p.Name, &p.Amount, &p.Description, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListParticulars retrieves all fee items ordered by name.
func (r *FeeRepository) ListParticulars(ctx context.Context) ([]model.Particular, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, amount, description, created_at FROM particulars ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var particulars []model.Particular
	for rows.Next() {
		var p model.Particular
		if err := rows.Scan(&p.ID, &p.Name, &p.Amount, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		particulars = append(particulars, p)
	}
	return particulars, rows.Err()
}

// UpdateParticular modifies a fee item's amount and description.
func (r *FeeRepository) UpdateParticular(ctx context.Context, p *model.Particular) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE particulars SET amount = $1, description = $2 WHERE id = $3`,
		p.Amount, p.Description, p.ID,
	)
	return err
}

// DeleteParticular removes a fee item; structure selections cascade.
func (r *FeeRepository) DeleteParticular(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM particulars WHERE id = $1`, id)
	return err
}

// CreateStructure starts an empty fee structure for a course year.
func (r *FeeRepository) CreateStructure(ctx context.Context, s *model.FeeStructure) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO fee_structures (course_code, year) VALUES ($1, $2)
		 RETURNING id, created_at`,
		s.CourseCode, s.Year,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateFeeStructure
		}
		return err
	}
	return nil
}

// GetStructure retrieves a course-year structure with its lines.
func (r *FeeRepository) GetStructure(ctx context.Context, courseCode string, year int) (*model.FeeStructure, error) {
	s := &model.FeeStructure{CourseCode: courseCode, Year: year}
	err := r.pool.QueryRow(ctx,
		`SELECT id, created_at FROM fee_structures WHERE course_code = $1 AND year = $2`,
		courseCode, year,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT subject, amount FROM fee_structure_subjects WHERE structure_id = $1 ORDER BY subject`, s.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var f model.SubjectFee
		if err := rows.Scan(&f.Subject, &f.Amount); err != nil {
			return nil, err
		}
		s.SubjectFees = append(s.SubjectFees, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := r.pool.Query(ctx,
		`SELECT p.name FROM fee_structure_particulars fp
		 JOIN particulars p ON p.id = fp.particular_id
		 WHERE fp.structure_id = $1 ORDER BY p.name`, s.ID)
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	for prows.Next() {
		var name string
		if err := prows.Scan(&name); err != nil {
			return nil, err
		}
		s.Particulars = append(s.Particulars, name)
	}
	return s, prows.Err()
}

// SetSubjectFee upserts one subject line of a structure.
func (r *FeeRepository) SetSubjectFee(ctx context.Context, structureID int, subject string, amount float64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO fee_structure_subjects (structure_id, subject, amount) VALUES ($1, $2, $3)
		 ON CONFLICT (structure_id, subject) DO UPDATE SET amount = EXCLUDED.amount`,
		structureID, subject, amount,
	)
	return err
}

// SelectParticular includes a fee item in a structure.
func (r *FeeRepository) SelectParticular(ctx context.Context, structureID, particularID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO fee_structure_particulars (structure_id, particular_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		structureID, particularID,
	)
	return err
}

// DeselectParticular removes a fee item from a structure.
func (r *FeeRepository) DeselectParticular(ctx context.Context, structureID, particularID int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM fee_structure_particulars WHERE structure_id = $1 AND particular_id = $2`,
		structureID, particularID,
	)
	return err
}

// DeleteStructure removes a fee structure and its lines.
func (r *FeeRepository) DeleteStructure(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM fee_structures WHERE id = $1`, id)
	return err
}

// CreateInvoice inserts an invoice with a fresh INV number.
func (r *FeeRepository) CreateInvoice(ctx context.Context, inv *model.Invoice) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO invoices (invoice_no, student_id, course_code, year, amount, due_date, breakdown)
		 VALUES ('INV' || lpad(nextval('invoice_no_seq')::text, 6, '0'), $1, $2, $3, $4, $5, $6)
		 RETURNING id, invoice_no, to_char(issued_date, 'YYYY-MM-DD'), status`,
		inv.StudentID, inv.CourseCode, inv.Year, inv.Amount, inv.DueDate, inv.Breakdown,
	).Scan(&inv.ID, &inv.InvoiceNo, &inv.IssuedDate, &inv.Status)
}

// GetInvoice retrieves one invoice.
func (r *FeeRepository) GetInvoice(ctx context.Context, id int) (*model.Invoice, error) {
	inv := &model.Invoice{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, invoice_no, student_id, course_code, year, amount,
		        to_char(due_date, 'YYYY-MM-DD'), to_char(issued_date, 'YYYY-MM-DD'),
		        status, to_char(payment_date, 'YYYY-MM-DD'), breakdown
		 FROM invoices WHERE id = $1`, id,
	).Scan(&inv.ID, &inv.InvoiceNo, &inv.StudentID, &inv.CourseCode, &inv.Year, &inv.Amount,
		&inv.DueDate, &inv.IssuedDate, &inv.Status, &inv.PaymentDate, &inv.Breakdown)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// ListInvoices retrieves invoices filtered by student and/or status.
func (r *FeeRepository) ListInvoices(ctx context.Context, studentID *int, status *model.InvoiceStatus, limit, offset int) ([]model.Invoice, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	argIdx := 1
	if studentID != nil {
		where += ` AND student_id = $` + strconv.Itoa(argIdx)
		args = append(args, *studentID)
		argIdx++
	}
	if status != nil {
		where += ` AND status = $` + strconv.Itoa(argIdx)
		args = append(args, *status)
		argIdx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, invoice_no, student_id, course_code, year, amount,
	                 to_char(due_date, 'YYYY-MM-DD'), to_char(issued_date, 'YYYY-MM-DD'),
	                 status, to_char(payment_date, 'YYYY-MM-DD'), breakdown
	          FROM invoices` + where +
		` ORDER BY id DESC LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		var inv model.Invoice
		if err := rows.Scan(&inv.ID, &inv.InvoiceNo, &inv.StudentID, &inv.CourseCode, &inv.Year, &inv.Amount,
			&inv.DueDate, &inv.IssuedDate, &inv.Status, &inv.PaymentDate, &inv.Breakdown); err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, total, rows.Err()
}

// UpdateInvoiceStatus overrides an invoice's status. Marking it paid
// stamps the payment date; any other status clears it. Returns false
// when the invoice does not exist.
func (r *FeeRepository) UpdateInvoiceStatus(ctx context.Context, id int, status model.InvoiceStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE invoices
		 SET status = $2,
		     payment_date = CASE WHEN $2 = 'paid' THEN CURRENT_DATE ELSE NULL END
		 WHERE id = $1`,
		id, string(status))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SumPayments returns the cumulative confirmed payments on an invoice.
func (r *FeeRepository) SumPayments(ctx context.Context, invoiceID int) (float64, error) {
	var sum float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1`, invoiceID,
	).Scan(&sum)
	return sum, err
}

// CreatePayment records a payment and, when settled is true, marks the
// invoice paid in the same transaction.
func (r *FeeRepository) CreatePayment(ctx context.Context, p *model.Payment, settled bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO payments (payment_no, invoice_id, amount)
		 VALUES ('PAY' || lpad(nextval('payment_no_seq')::text, 6, '0'), $1, $2)
		 RETURNING id, payment_no, to_char(date, 'YYYY-MM-DD'), status`,
		p.InvoiceID, p.Amount,
	).Scan(&p.ID, &p.PaymentNo, &p.Date, &p.Status)
	if err != nil {
		return err
	}

	if settled {
		if _, err := tx.Exec(ctx,
			`UPDATE invoices SET status = 'paid', payment_date = CURRENT_DATE WHERE id = $1`,
			p.InvoiceID,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ListPayments retrieves the payments recorded against an invoice.
func (r *FeeRepository) ListPayments(ctx context.Context, invoiceID int) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, payment_no, invoice_id, amount, to_char(date, 'YYYY-MM-DD'), status
		 FROM payments WHERE invoice_id = $1 ORDER BY id`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.PaymentNo, &p.InvoiceID, &p.Amount, &p.Date, &p.Status); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// MarkOverdue flips pending invoices past their due date to overdue.
// Returns the number of invoices updated.
func (r *FeeRepository) MarkOverdue(ctx context.Context) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE invoices SET status = 'overdue' WHERE status = 'pending' AND due_date < CURRENT_DATE`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// GetFinancialSummary aggregates the fee and payroll ledgers.
func (r *FeeRepository) GetFinancialSummary(ctx context.Context) (*model.FinancialSummary, error) {
	s := &model.FinancialSummary{}
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COALESCE(SUM(amount), 0) FROM payments),
			(SELECT COALESCE(SUM(i.amount - COALESCE(p.paid, 0)), 0)
			 FROM invoices i
			 LEFT JOIN (SELECT invoice_id, SUM(amount) AS paid FROM payments GROUP BY invoice_id) p
			   ON p.invoice_id = i.id
			 WHERE i.status <> 'paid'),
			(SELECT COUNT(*) FROM invoices),
			(SELECT COUNT(*) FROM invoices WHERE status = 'paid'),
			(SELECT COUNT(*) FROM invoices WHERE status = 'pending'),
			(SELECT COUNT(*) FROM invoices WHERE status = 'overdue'),
			(SELECT COUNT(*) FROM payments),
			(SELECT COALESCE(SUM(net_salary), 0) FROM payroll_runs WHERE payment_status = 'paid')`,
	).Scan(&s.TotalFeesCollected, &s.OutstandingFees, &s.TotalInvoices, &s.PaidInvoices,
		&s.PendingInvoices, &s.OverdueInvoices, &s.TotalPayments, &s.TotalPayrollExpenses)
	if err != nil {
		return nil, err
	}
	return s, nil
}

package postgresql

import (
	"context"
	"fmt"

	"github.com/bayanihr/payroll-backend-go/internal/domain/advance"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepository{db: db}
}

const advanceColumns = `
	id, employee_id, amount, deduction_per_cutoff, remaining_balance,
	status, purpose, rejection_reason, requested_at, approved_at, approved_by,
	disbursed_at, completed_at, created_at, updated_at
`

func scanAdvance(row pgx.Row) (advance.SalaryAdvance, error) {
	var a advance.SalaryAdvance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Amount, &a.DeductionPerCutoff, &a.RemainingBalance,
		&a.Status, &a.Purpose, &a.RejectionReason, &a.RequestedAt, &a.ApprovedAt, &a.ApprovedBy,
		&a.DisbursedAt, &a.CompletedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *advanceRepository) Create(ctx context.Context, a advance.SalaryAdvance) (advance.SalaryAdvance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_advances (employee_id, amount, deduction_per_cutoff, remaining_balance, status, purpose)
		VALUES ($1, $2, $3, 0, $4, $5)
		RETURNING ` + advanceColumns

	created, err := scanAdvance(q.QueryRow(ctx, query, a.EmployeeID, a.Amount, a.DeductionPerCutoff, a.Status, a.Purpose))
	if err != nil {
		return advance.SalaryAdvance{}, fmt.Errorf("failed to create salary advance: %w", err)
	}
	return created, nil
}

func (r *advanceRepository) GetByID(ctx context.Context, id string) (advance.SalaryAdvance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + advanceColumns + ` FROM salary_advances WHERE id = $1`

	a, err := scanAdvance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.SalaryAdvance{}, advance.ErrAdvanceNotFound
		}
		return advance.SalaryAdvance{}, fmt.Errorf("failed to get salary advance: %w", err)
	}
	return a, nil
}

func (r *advanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]advance.SalaryAdvance, error) {
	return r.listByEmployee(ctx, employeeID, "", false)
}

func (r *advanceRepository) ListDisbursedByEmployee(ctx context.Context, employeeID string) ([]advance.SalaryAdvance, error) {
	return r.listByEmployee(ctx, employeeID, advance.StatusDisbursed, false)
}

// ListDisbursedByEmployeeForUpdate takes row locks so concurrent payroll
// approvals serialize on each advance; it must run inside a transaction,
// otherwise the lock would be released immediately and the read-modify-
// write of the balance could act on stale data.
func (r *advanceRepository) ListDisbursedByEmployeeForUpdate(ctx context.Context, employeeID string) ([]advance.SalaryAdvance, error) {
	if !InTransaction(ctx) {
		return nil, fmt.Errorf("ListDisbursedByEmployeeForUpdate requires a transaction")
	}
	return r.listByEmployee(ctx, employeeID, advance.StatusDisbursed, true)
}

func (r *advanceRepository) listByEmployee(ctx context.Context, employeeID string, status advance.Status, forUpdate bool) ([]advance.SalaryAdvance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + advanceColumns + ` FROM salary_advances WHERE employee_id = $1`
	args := []interface{}{employeeID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY requested_at`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary advances: %w", err)
	}
	defer rows.Close()

	var advances []advance.SalaryAdvance
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary advance: %w", err)
		}
		advances = append(advances, a)
	}
	return advances, rows.Err()
}

func (r *advanceRepository) UpdateStatus(ctx context.Context, id string, status advance.Status, actorID string, rejectionReason *string) error {
	q := GetQuerier(ctx, r.db)

	var query string
	switch status {
	case advance.StatusApproved:
		query = `
			UPDATE salary_advances
			SET status = $2, approved_at = NOW(), approved_by = $3, updated_at = NOW()
			WHERE id = $1
		`
		_, err := q.Exec(ctx, query, id, status, actorID)
		if err != nil {
			return fmt.Errorf("failed to update advance status: %w", err)
		}
	case advance.StatusRejected:
		query = `
			UPDATE salary_advances
			SET status = $2, rejection_reason = $3, updated_at = NOW()
			WHERE id = $1
		`
		_, err := q.Exec(ctx, query, id, status, rejectionReason)
		if err != nil {
			return fmt.Errorf("failed to update advance status: %w", err)
		}
	default:
		query = `UPDATE salary_advances SET status = $2, updated_at = NOW() WHERE id = $1`
		_, err := q.Exec(ctx, query, id, status)
		if err != nil {
			return fmt.Errorf("failed to update advance status: %w", err)
		}
	}
	return nil
}

// Disburse sets the running balance to the principal exactly once; the
// status guard keeps a double disbursement from resetting a partially
// repaid balance.
func (r *advanceRepository) Disburse(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_advances
		SET status = 'disbursed', remaining_balance = amount, disbursed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'approved'
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to disburse salary advance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return advance.ErrInvalidStatusTransition
	}
	return nil
}

// DecrementBalance performs the guarded write of the ledger: the WHERE
// clause refuses any decrement that would take the balance below zero, so
// a violation surfaces as ErrNegativeBalance instead of corrupt data.
func (r *advanceRepository) DecrementBalance(ctx context.Context, id string, amount decimal.Decimal) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_advances
		SET remaining_balance = remaining_balance - $2, updated_at = NOW()
		WHERE id = $1 AND remaining_balance >= $2
		RETURNING remaining_balance
	`

	var newBalance decimal.Decimal
	err := q.QueryRow(ctx, query, id, amount).Scan(&newBalance)
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return decimal.Zero, getErr
			}
			return decimal.Zero, advance.ErrNegativeBalance
		}
		return decimal.Zero, fmt.Errorf("failed to decrement advance balance: %w", err)
	}
	return newBalance, nil
}

func (r *advanceRepository) MarkFullyPaid(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_advances
		SET status = 'fully_paid', completed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'disbursed' AND remaining_balance = 0
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark advance fully paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return advance.ErrInvalidStatusTransition
	}
	return nil
}

func (r *advanceRepository) InsertDeduction(ctx context.Context, d advance.AdvanceDeduction) (advance.AdvanceDeduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO advance_deductions (advance_id, payroll_record_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, advance_id, payroll_record_id, amount, deducted_at
	`

	var created advance.AdvanceDeduction
	err := q.QueryRow(ctx, query, d.AdvanceID, d.PayrollRecordID, d.Amount).Scan(
		&created.ID, &created.AdvanceID, &created.PayrollRecordID, &created.Amount, &created.DeductedAt,
	)
	if err != nil {
		return advance.AdvanceDeduction{}, fmt.Errorf("failed to insert advance deduction: %w", err)
	}
	return created, nil
}

func (r *advanceRepository) ListDeductionsByAdvance(ctx context.Context, advanceID string) ([]advance.AdvanceDeduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, advance_id, payroll_record_id, amount, deducted_at
		FROM advance_deductions
		WHERE advance_id = $1
		ORDER BY deducted_at
	`

	rows, err := q.Query(ctx, query, advanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list advance deductions: %w", err)
	}
	defer rows.Close()

	var deductions []advance.AdvanceDeduction
	for rows.Next() {
		var d advance.AdvanceDeduction
		if err := rows.Scan(&d.ID, &d.AdvanceID, &d.PayrollRecordID, &d.Amount, &d.DeductedAt); err != nil {
			return nil, fmt.Errorf("failed to scan advance deduction: %w", err)
		}
		deductions = append(deductions, d)
	}
	return deductions, rows.Err()
}

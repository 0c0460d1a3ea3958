package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollRecordColumns = `
	pr.id, pr.employee_id, pr.period_id,
	pr.daily_rate, pr.hourly_rate,
	pr.basic_pay, pr.overtime_pay, pr.holiday_pay, pr.allowances,
	pr.sss_deduction, pr.philhealth_deduction, pr.pagibig_deduction,
	pr.tax_deduction, pr.advance_deduction, pr.late_deduction, pr.other_deductions,
	pr.gross_pay, pr.total_deductions, pr.net_pay,
	pr.days_worked, pr.unpaid_leave_days,
	pr.ordinary_ot_minutes, pr.rest_day_ot_minutes, pr.holiday_ot_minutes, pr.late_minutes,
	pr.status, pr.approved_at, pr.approved_by, pr.released_at, pr.released_by,
	pr.created_at, pr.updated_at,
	e.full_name, e.employee_code
`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.PeriodID,
		&rec.DailyRate, &rec.HourlyRate,
		&rec.BasicPay, &rec.OvertimePay, &rec.HolidayPay, &rec.Allowances,
		&rec.SSSDeduction, &rec.PhilHealthDeduction, &rec.PagIBIGDeduction,
		&rec.TaxDeduction, &rec.AdvanceDeduction, &rec.LateDeduction, &rec.OtherDeductions,
		&rec.GrossPay, &rec.TotalDeductions, &rec.NetPay,
		&rec.DaysWorked, &rec.UnpaidLeaveDays,
		&rec.OrdinaryOTMinutes, &rec.RestDayOTMinutes, &rec.HolidayOTMinutes, &rec.LateMinutes,
		&rec.Status, &rec.ApprovedAt, &rec.ApprovedBy, &rec.ReleasedAt, &rec.ReleasedBy,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.EmployeeCode,
	)
	return rec, err
}

func (r *payrollRepository) CreateRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			employee_id, period_id, daily_rate, hourly_rate,
			basic_pay, overtime_pay, holiday_pay, allowances,
			sss_deduction, philhealth_deduction, pagibig_deduction,
			tax_deduction, advance_deduction, late_deduction, other_deductions,
			gross_pay, total_deductions, net_pay,
			days_worked, unpaid_leave_days,
			ordinary_ot_minutes, rest_day_ot_minutes, holiday_ot_minutes, late_minutes,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.PeriodID, record.DailyRate, record.HourlyRate,
		record.BasicPay, record.OvertimePay, record.HolidayPay, record.Allowances,
		record.SSSDeduction, record.PhilHealthDeduction, record.PagIBIGDeduction,
		record.TaxDeduction, record.AdvanceDeduction, record.LateDeduction, record.OtherDeductions,
		record.GrossPay, record.TotalDeductions, record.NetPay,
		record.DaysWorked, record.UnpaidLeaveDays,
		record.OrdinaryOTMinutes, record.RestDayOTMinutes, record.HolidayOTMinutes, record.LateMinutes,
		record.Status,
	).Scan(&record.ID)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_employee_period") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return r.GetRecordByID(ctx, record.ID)
}

func (r *payrollRepository) GetRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE pr.id = $1
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

func (r *payrollRepository) GetRecordByEmployeePeriod(ctx context.Context, employeeID, periodID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE pr.employee_id = $1 AND pr.period_id = $2
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, periodID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

func (r *payrollRepository) ListRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.PeriodID != "" {
		conditions = append(conditions, fmt.Sprintf("pr.period_id = $%d", argPos))
		args = append(args, filter.PeriodID)
		argPos++
	}
	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("pr.employee_id = $%d", argPos))
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("pr.status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM payroll_records pr WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE ` + where + `
		ORDER BY e.employee_code
		LIMIT ` + fmt.Sprintf("$%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	return records, totalCount, rows.Err()
}

// RegenerateRecord recomputes a draft record in place, keeping its
// identity. The status guard in the WHERE clause makes regeneration of a
// non-draft record a no-op that surfaces as ErrRecordNotDraft.
func (r *payrollRepository) RegenerateRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records SET
			daily_rate = $2, hourly_rate = $3,
			basic_pay = $4, overtime_pay = $5, holiday_pay = $6, allowances = $7,
			sss_deduction = $8, philhealth_deduction = $9, pagibig_deduction = $10,
			tax_deduction = $11, advance_deduction = $12, late_deduction = $13, other_deductions = $14,
			gross_pay = $15, total_deductions = $16, net_pay = $17,
			days_worked = $18, unpaid_leave_days = $19,
			ordinary_ot_minutes = $20, rest_day_ot_minutes = $21, holiday_ot_minutes = $22, late_minutes = $23,
			updated_at = NOW()
		WHERE id = $1 AND status = 'draft'
	`

	tag, err := q.Exec(ctx, query,
		record.ID, record.DailyRate, record.HourlyRate,
		record.BasicPay, record.OvertimePay, record.HolidayPay, record.Allowances,
		record.SSSDeduction, record.PhilHealthDeduction, record.PagIBIGDeduction,
		record.TaxDeduction, record.AdvanceDeduction, record.LateDeduction, record.OtherDeductions,
		record.GrossPay, record.TotalDeductions, record.NetPay,
		record.DaysWorked, record.UnpaidLeaveDays,
		record.OrdinaryOTMinutes, record.RestDayOTMinutes, record.HolidayOTMinutes, record.LateMinutes,
	)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to regenerate payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.PayrollRecord{}, payroll.ErrRecordNotDraft
	}

	return r.GetRecordByID(ctx, record.ID)
}

func (r *payrollRepository) DeleteDraftRecord(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1 AND status = 'draft'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or not draft; disambiguate for the caller.
		if _, err := r.GetRecordByID(ctx, id); err != nil {
			return err
		}
		return payroll.ErrRecordNotDraft
	}
	return nil
}

func (r *payrollRepository) MarkApproved(ctx context.Context, id, approvedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = 'approved', approved_at = NOW(), approved_by = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'draft'
	`

	tag, err := q.Exec(ctx, query, id, approvedBy)
	if err != nil {
		return fmt.Errorf("failed to approve payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetRecordByID(ctx, id); err != nil {
			return err
		}
		return payroll.ErrRecordNotDraft
	}
	return nil
}

func (r *payrollRepository) MarkReleased(ctx context.Context, id, releasedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = 'released', released_at = NOW(), released_by = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'approved'
	`

	tag, err := q.Exec(ctx, query, id, releasedBy)
	if err != nil {
		return fmt.Errorf("failed to release payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetRecordByID(ctx, id); err != nil {
			return err
		}
		return payroll.ErrRecordNotApproved
	}
	return nil
}

func (r *payrollRepository) CreatePayslipSnapshot(ctx context.Context, snapshot payroll.PayslipSnapshot) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslip_snapshots (payroll_record_id, employee_id, period_id, payload)
		VALUES ($1, $2, $3, $4)
	`

	_, err := q.Exec(ctx, query, snapshot.PayrollRecordID, snapshot.EmployeeID, snapshot.PeriodID, snapshot.Payload)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payslip_record") {
			return payroll.ErrPayslipAlreadyGenerated
		}
		return fmt.Errorf("failed to create payslip snapshot: %w", err)
	}
	return nil
}

func (r *payrollRepository) CountUnreleasedByPeriod(ctx context.Context, periodID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	query := `SELECT COUNT(*) FROM payroll_records WHERE period_id = $1 AND status <> 'released'`
	if err := q.QueryRow(ctx, query, periodID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unreleased records: %w", err)
	}
	return count, nil
}

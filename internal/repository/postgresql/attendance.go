package postgresql

import (
	"context"
	"fmt"

	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
)

// attendanceSource aggregates the external attendance tables into the
// per-period facts payroll consumes. Raw capture (QR scans, geofencing,
// grace-period filtering) happens outside this service; deductible late
// minutes arrive already filtered.
type attendanceSource struct {
	db *database.DB
}

func NewAttendanceSource(db *database.DB) payroll.AttendanceSource {
	return &attendanceSource{db: db}
}

func (r *attendanceSource) GetAttendanceSummaries(ctx context.Context, periodID string, employeeIDs []string) ([]payroll.AttendanceSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			a.employee_id,
			COALESCE(SUM(a.days_worked), 0) AS days_worked,
			COALESCE(SUM(a.ordinary_ot_minutes), 0) AS ordinary_ot_minutes,
			COALESCE(SUM(a.rest_day_ot_minutes), 0) AS rest_day_ot_minutes,
			COALESCE(SUM(a.holiday_ot_minutes), 0) AS holiday_ot_minutes,
			COALESCE(SUM(a.deductible_late_minutes), 0) AS deductible_late_minutes
		FROM attendance_summaries a
		WHERE a.period_id = $1 AND a.employee_id = ANY($2)
		GROUP BY a.employee_id
	`

	rows, err := q.Query(ctx, query, periodID, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate attendance: %w", err)
	}
	defer rows.Close()

	var summaries []payroll.AttendanceSummary
	for rows.Next() {
		var s payroll.AttendanceSummary
		if err := rows.Scan(
			&s.EmployeeID, &s.DaysWorked,
			&s.OrdinaryOTMinutes, &s.RestDayOTMinutes, &s.HolidayOTMinutes,
			&s.DeductibleLateMinutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// leaveSource contributes the single number the leave collaborator owes
// payroll: unpaid leave days in the period.
type leaveSource struct {
	db *database.DB
}

func NewLeaveSource(db *database.DB) payroll.LeaveSource {
	return &leaveSource{db: db}
}

func (r *leaveSource) GetLeaveSummaries(ctx context.Context, periodID string, employeeIDs []string) ([]payroll.LeaveSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.employee_id, COALESCE(SUM(l.unpaid_leave_days), 0)
		FROM leave_summaries l
		WHERE l.period_id = $1 AND l.employee_id = ANY($2)
		GROUP BY l.employee_id
	`

	rows, err := q.Query(ctx, query, periodID, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate unpaid leave: %w", err)
	}
	defer rows.Close()

	var summaries []payroll.LeaveSummary
	for rows.Next() {
		var s payroll.LeaveSummary
		if err := rows.Scan(&s.EmployeeID, &s.UnpaidLeaveDays); err != nil {
			return nil, fmt.Errorf("failed to scan leave summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

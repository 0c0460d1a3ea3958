package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/domain/advance"
	"github.com/bayanihr/payroll-backend-go/internal/domain/contribution"
	"github.com/bayanihr/payroll-backend-go/internal/domain/employee"
	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
	"github.com/bayanihr/payroll-backend-go/internal/domain/period"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
	"github.com/bayanihr/payroll-backend-go/internal/repository/postgresql"
	contributioncalc "github.com/bayanihr/payroll-backend-go/internal/service/contribution"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db *database.DB
	payroll.PayrollRepository
	payroll.AttendanceSource
	payroll.LeaveSource
	employee.EmployeeRepository
	period.PayPeriodRepository
	contribution.ScheduleRepository
	advanceService advance.AdvanceService

	// withTx wraps the approve and release paths; swappable for tests.
	withTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	attendanceSource payroll.AttendanceSource,
	leaveSource payroll.LeaveSource,
	employeeRepo employee.EmployeeRepository,
	periodRepo period.PayPeriodRepository,
	scheduleRepo contribution.ScheduleRepository,
	advanceService advance.AdvanceService,
) payroll.PayrollService {
	svc := &PayrollServiceImpl{
		db:                  db,
		PayrollRepository:   payrollRepo,
		AttendanceSource:    attendanceSource,
		LeaveSource:         leaveSource,
		EmployeeRepository:  employeeRepo,
		PayPeriodRepository: periodRepo,
		ScheduleRepository:  scheduleRepo,
		advanceService:      advanceService,
	}
	svc.withTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, svc.db, fn)
	}
	return svc
}

// ========== GENERATION ==========

// GeneratePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	p, err := s.PayPeriodRepository.GetByID(ctx, req.PeriodID)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}
	if p.Status == period.StatusClosed {
		return payroll.GeneratePayrollResponse{}, period.ErrPayPeriodClosed
	}

	// The schedule in force is selected by the period's end date, so a
	// mid-period rate change applies from the first period ending after it.
	schedule, err := s.ScheduleRepository.GetActive(ctx, p.EndDate)
	if err != nil {
		if !errors.Is(err, contribution.ErrScheduleNotFound) {
			return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to load contribution schedule: %w", err)
		}
		schedule = contribution.DefaultSchedule()
	}
	calc := contributioncalc.NewCalculator(schedule)

	employees, err := s.targetEmployees(ctx, req.EmployeeIDs)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}

	attendance, err := s.AttendanceSource.GetAttendanceSummaries(ctx, p.ID, ids)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, fmt.Errorf("%w: %v", payroll.ErrAttendanceSourceMissing, err)
	}
	attendanceByEmployee := make(map[string]payroll.AttendanceSummary, len(attendance))
	for _, a := range attendance {
		attendanceByEmployee[a.EmployeeID] = a
	}

	leaves, err := s.LeaveSource.GetLeaveSummaries(ctx, p.ID, ids)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to load leave summaries: %w", err)
	}
	leaveByEmployee := make(map[string]payroll.LeaveSummary, len(leaves))
	for _, l := range leaves {
		leaveByEmployee[l.EmployeeID] = l
	}

	result := payroll.GeneratePayrollResponse{PeriodID: p.ID}
	for _, emp := range employees {
		snapshot, ok := NewRateSnapshot(emp)
		if !ok {
			// No usable rate configured: skip, never error the whole run.
			result.Skipped++
			continue
		}

		existing, err := s.PayrollRepository.GetRecordByEmployeePeriod(ctx, emp.ID, p.ID)
		regenerate := false
		switch {
		case err == nil && existing.Status != payroll.StatusDraft:
			// Approved and released records are frozen.
			result.Skipped++
			continue
		case err == nil:
			regenerate = true
		case !errors.Is(err, payroll.ErrPayrollRecordNotFound):
			return payroll.GeneratePayrollResponse{}, err
		}

		record, err := s.buildRecord(ctx, emp, p, snapshot, calc,
			attendanceByEmployee[emp.ID], leaveByEmployee[emp.ID])
		if err != nil {
			return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to compute payroll for employee %s: %w", emp.ID, err)
		}

		var saved payroll.PayrollRecord
		if regenerate {
			record.ID = existing.ID
			saved, err = s.PayrollRepository.RegenerateRecord(ctx, record)
			if err == nil {
				result.Regenerated++
			}
		} else {
			saved, err = s.PayrollRepository.CreateRecord(ctx, record)
			if err == nil {
				result.Generated++
			}
		}
		if err != nil {
			return payroll.GeneratePayrollResponse{}, err
		}
		result.Records = append(result.Records, toRecordResponse(saved))
	}

	if p.Status == period.StatusOpen {
		if err := s.PayPeriodRepository.UpdateStatus(ctx, p.ID, period.StatusProcessing); err != nil {
			return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to move period to processing: %w", err)
		}
	}

	return result, nil
}

func (s *PayrollServiceImpl) targetEmployees(ctx context.Context, employeeIDs []string) ([]employee.Employee, error) {
	if len(employeeIDs) == 0 {
		employees, err := s.EmployeeRepository.GetPayable(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list payable employees: %w", err)
		}
		return employees, nil
	}

	employees := make([]employee.Employee, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		emp, err := s.EmployeeRepository.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !emp.Payable() {
			return nil, employee.ErrEmployeeNotPayable
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

// buildRecord runs the full per-employee computation: rate snapshot, basic
// pay net of unpaid leave, per-type overtime, statutory contributions off
// the monthly salary basis, withholding off the per-cutoff taxable income,
// lateness, and the planned (not yet committed) advance deduction.
func (s *PayrollServiceImpl) buildRecord(
	ctx context.Context,
	emp employee.Employee,
	p period.PayPeriod,
	snapshot RateSnapshot,
	calc *contributioncalc.Calculator,
	att payroll.AttendanceSummary,
	leave payroll.LeaveSummary,
) (payroll.PayrollRecord, error) {
	record := payroll.PayrollRecord{
		EmployeeID: emp.ID,
		PeriodID:   p.ID,
		DailyRate:  snapshot.DailyRate,
		HourlyRate: snapshot.HourlyRate,
		Status:     payroll.StatusDraft,

		DaysWorked:        att.DaysWorked,
		UnpaidLeaveDays:   leave.UnpaidLeaveDays,
		OrdinaryOTMinutes: att.OrdinaryOTMinutes,
		RestDayOTMinutes:  att.RestDayOTMinutes,
		HolidayOTMinutes:  att.HolidayOTMinutes,
		LateMinutes:       att.DeductibleLateMinutes,
	}

	record.BasicPay = snapshot.BasicPay(att.DaysWorked, leave.UnpaidLeaveDays)
	record.OvertimePay = snapshot.OvertimePay(payroll.OvertimeOrdinary, att.OrdinaryOTMinutes).
		Add(snapshot.OvertimePay(payroll.OvertimeRestDay, att.RestDayOTMinutes))
	record.HolidayPay = snapshot.OvertimePay(payroll.OvertimeHoliday, att.HolidayOTMinutes)
	record.Allowances = emp.PerCutoffAllowance
	record.LateDeduction = snapshot.LatenessDeduction(att.DeductibleLateMinutes)

	monthlySalary := s.monthlySalaryBasis(emp, snapshot)
	cutoffs := p.CutoffKind.CutoffsPerMonth()

	var err error
	if record.SSSDeduction, err = calc.SSSEmployeeShare(monthlySalary, cutoffs); err != nil {
		return payroll.PayrollRecord{}, err
	}
	if record.PhilHealthDeduction, err = calc.PhilHealthEmployeeShare(monthlySalary, cutoffs); err != nil {
		return payroll.PayrollRecord{}, err
	}
	if record.PagIBIGDeduction, err = calc.PagIBIGEmployeeShare(monthlySalary, cutoffs); err != nil {
		return payroll.PayrollRecord{}, err
	}

	planned, err := s.advanceService.PlanDeductions(ctx, emp.ID)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	record.AdvanceDeduction = planned

	// Tax comes last: it depends on gross minus the statutory lines.
	record.RecomputeTotals()
	taxable := record.StatutoryBase()
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	if record.TaxDeduction, err = calc.WithholdingTax(taxable, p.CutoffKind.CutoffsPerYear()); err != nil {
		return payroll.PayrollRecord{}, err
	}

	record.RecomputeTotals()
	return record, nil
}

// monthlySalaryBasis is the salary the statutory tables key on: the
// configured monthly rate, or the daily rate scaled to a standard month for
// daily-basis employees.
func (s *PayrollServiceImpl) monthlySalaryBasis(emp employee.Employee, snapshot RateSnapshot) decimal.Decimal {
	if emp.RateBasis == employee.RateBasisMonthly && emp.MonthlyRate != nil {
		return *emp.MonthlyRate
	}
	return snapshot.DailyRate.Mul(workingDaysPerMonth).Round(2)
}

// ========== WORKFLOW ==========

// ApprovePayroll implements payroll.PayrollService. The status flip and the
// advance ledger commit share one transaction; either both land or neither
// does. The committed advance amount wins over the planned one when a
// balance moved between generation and approval.
func (s *PayrollServiceImpl) ApprovePayroll(ctx context.Context, recordID string, actorID string) error {
	return s.withTx(ctx, func(ctx context.Context) error {
		record, err := s.PayrollRepository.GetRecordByID(ctx, recordID)
		if err != nil {
			return err
		}
		if !record.Status.CanTransitionTo(payroll.StatusApproved) {
			return payroll.ErrRecordNotDraft
		}

		committed, err := s.advanceService.ApplyDeductions(ctx, record.EmployeeID, record.ID)
		if err != nil {
			return err
		}

		if !committed.Equal(record.AdvanceDeduction) {
			record.AdvanceDeduction = committed
			record.RecomputeTotals()
			if _, err := s.PayrollRepository.RegenerateRecord(ctx, record); err != nil {
				return err
			}
		}

		return s.PayrollRepository.MarkApproved(ctx, record.ID, actorID)
	})
}

// ReleasePayroll implements payroll.PayrollService. Releasing writes the
// payslip snapshot in the same transaction: a released record always has
// one.
func (s *PayrollServiceImpl) ReleasePayroll(ctx context.Context, recordID string, actorID string) error {
	return s.withTx(ctx, func(ctx context.Context) error {
		record, err := s.PayrollRepository.GetRecordByID(ctx, recordID)
		if err != nil {
			return err
		}
		if !record.Status.CanTransitionTo(payroll.StatusReleased) {
			return payroll.ErrRecordNotApproved
		}

		if err := s.PayrollRepository.MarkReleased(ctx, record.ID, actorID); err != nil {
			return err
		}

		released, err := s.PayrollRepository.GetRecordByID(ctx, record.ID)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(toRecordResponse(released))
		if err != nil {
			return fmt.Errorf("failed to serialize payslip: %w", err)
		}

		return s.PayrollRepository.CreatePayslipSnapshot(ctx, payroll.PayslipSnapshot{
			PayrollRecordID: record.ID,
			EmployeeID:      record.EmployeeID,
			PeriodID:        record.PeriodID,
			Payload:         payload,
		})
	})
}

// DeleteDraftPayroll implements payroll.PayrollService. Only drafts can go;
// approved and released records are immutable.
func (s *PayrollServiceImpl) DeleteDraftPayroll(ctx context.Context, recordID string) error {
	record, err := s.PayrollRepository.GetRecordByID(ctx, recordID)
	if err != nil {
		return err
	}
	if record.Status != payroll.StatusDraft {
		return payroll.ErrRecordImmutable
	}
	return s.PayrollRepository.DeleteDraftRecord(ctx, recordID)
}

// ========== QUERIES ==========

// GetPayrollRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayrollRecord(ctx context.Context, recordID string) (payroll.PayrollRecordResponse, error) {
	record, err := s.PayrollRepository.GetRecordByID(ctx, recordID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return toRecordResponse(record), nil
}

// ListPayrollRecords implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordsResponse, error) {
	records, total, err := s.PayrollRepository.ListRecords(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordsResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	responses := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, toRecordResponse(r))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}
	return payroll.ListPayrollRecordsResponse{
		Records: responses,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

func toRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	resp := payroll.PayrollRecordResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		PeriodID:   r.PeriodID,

		DailyRate:  r.DailyRate,
		HourlyRate: r.HourlyRate,

		BasicPay:    r.BasicPay,
		OvertimePay: r.OvertimePay,
		HolidayPay:  r.HolidayPay,
		Allowances:  r.Allowances,

		SSSDeduction:        r.SSSDeduction,
		PhilHealthDeduction: r.PhilHealthDeduction,
		PagIBIGDeduction:    r.PagIBIGDeduction,
		TaxDeduction:        r.TaxDeduction,
		AdvanceDeduction:    r.AdvanceDeduction,
		LateDeduction:       r.LateDeduction,
		OtherDeductions:     r.OtherDeductions,

		GrossPay:        r.GrossPay,
		TotalDeductions: r.TotalDeductions,
		NetPay:          r.NetPay,

		DaysWorked:      r.DaysWorked,
		UnpaidLeaveDays: r.UnpaidLeaveDays,
		LateMinutes:     r.LateMinutes,

		Status: string(r.Status),
	}
	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	if r.EmployeeCode != nil {
		resp.EmployeeCode = *r.EmployeeCode
	}
	if r.ApprovedAt != nil {
		formatted := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &formatted
	}
	if r.ReleasedAt != nil {
		formatted := r.ReleasedAt.Format(time.RFC3339)
		resp.ReleasedAt = &formatted
	}
	return resp
}

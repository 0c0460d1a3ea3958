package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum for the payroll record workflow.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusReleased Status = "released"
)

// statusTransitions is the single source of truth for legal record
// transitions. No skipping, no reversing.
var statusTransitions = map[Status][]Status{
	StatusDraft:    {StatusApproved},
	StatusApproved: {StatusReleased},
	StatusReleased: {},
}

// CanTransitionTo reports whether moving from s to target is legal.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// OvertimeType - how the overtime minutes were classified upstream. Each
// type carries its own pay multiplier and minutes are never pooled across
// types.
type OvertimeType string

const (
	OvertimeOrdinary OvertimeType = "ordinary"
	OvertimeRestDay  OvertimeType = "rest_day"
	OvertimeHoliday  OvertimeType = "holiday"
)

// PayrollRecord - one per (employee, period). Monetary fields are mutable
// only while the record is draft; the rate snapshot is captured at
// computation time and never recomputed.
type PayrollRecord struct {
	ID         string
	EmployeeID string
	PeriodID   string

	// Rate snapshot
	DailyRate  decimal.Decimal
	HourlyRate decimal.Decimal

	// Earnings
	BasicPay    decimal.Decimal
	OvertimePay decimal.Decimal
	HolidayPay  decimal.Decimal
	Allowances  decimal.Decimal

	// Deduction lines
	SSSDeduction        decimal.Decimal
	PhilHealthDeduction decimal.Decimal
	PagIBIGDeduction    decimal.Decimal
	TaxDeduction        decimal.Decimal
	AdvanceDeduction    decimal.Decimal
	LateDeduction       decimal.Decimal
	OtherDeductions     decimal.Decimal

	// Derived totals, always recomputed together via RecomputeTotals.
	GrossPay        decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal

	// Attendance facts behind the numbers
	DaysWorked        decimal.Decimal
	UnpaidLeaveDays   decimal.Decimal
	OrdinaryOTMinutes int
	RestDayOTMinutes  int
	HolidayOTMinutes  int
	LateMinutes       int

	Status     Status
	ApprovedAt *time.Time
	ApprovedBy *string
	ReleasedAt *time.Time
	ReleasedBy *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// RecomputeTotals derives gross, total deductions and net in one place.
// Lateness is a deduction line and is subtracted exactly once, inside the
// total.
func (r *PayrollRecord) RecomputeTotals() {
	r.GrossPay = r.BasicPay.Add(r.OvertimePay).Add(r.HolidayPay).Add(r.Allowances)
	r.TotalDeductions = r.SSSDeduction.
		Add(r.PhilHealthDeduction).
		Add(r.PagIBIGDeduction).
		Add(r.TaxDeduction).
		Add(r.AdvanceDeduction).
		Add(r.LateDeduction).
		Add(r.OtherDeductions)
	r.NetPay = r.GrossPay.Sub(r.TotalDeductions)
}

// StatutoryBase is the per-cutoff taxable income: gross minus the three
// statutory contributions for the same cutoff.
func (r *PayrollRecord) StatutoryBase() decimal.Decimal {
	return r.GrossPay.Sub(r.SSSDeduction).Sub(r.PhilHealthDeduction).Sub(r.PagIBIGDeduction)
}

// AttendanceSummary - aggregate consumed from the attendance collaborator.
// Grace-period filtering of late minutes happens upstream.
type AttendanceSummary struct {
	EmployeeID            string
	DaysWorked            decimal.Decimal
	OrdinaryOTMinutes     int
	RestDayOTMinutes      int
	HolidayOTMinutes      int
	DeductibleLateMinutes int
}

// LeaveSummary - aggregate consumed from the leave collaborator.
type LeaveSummary struct {
	EmployeeID      string
	UnpaidLeaveDays decimal.Decimal
}

// PayslipSnapshot - immutable serialized copy of a record, written once at
// release.
type PayslipSnapshot struct {
	ID              string
	PayrollRecordID string
	EmployeeID      string
	PeriodID        string
	Payload         []byte
	GeneratedAt     time.Time
}

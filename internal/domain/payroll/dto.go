package payroll

import (
	"github.com/bayanihr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayrollRequest struct {
	PeriodID    string   `json:"period_id"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PeriodID) {
		errs = append(errs, validator.ValidationError{Field: "period_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRecordResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	PeriodID     string `json:"period_id"`

	DailyRate  decimal.Decimal `json:"daily_rate"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`

	BasicPay    decimal.Decimal `json:"basic_pay"`
	OvertimePay decimal.Decimal `json:"overtime_pay"`
	HolidayPay  decimal.Decimal `json:"holiday_pay"`
	Allowances  decimal.Decimal `json:"allowances"`

	SSSDeduction        decimal.Decimal `json:"sss_deduction"`
	PhilHealthDeduction decimal.Decimal `json:"philhealth_deduction"`
	PagIBIGDeduction    decimal.Decimal `json:"pagibig_deduction"`
	TaxDeduction        decimal.Decimal `json:"tax_deduction"`
	AdvanceDeduction    decimal.Decimal `json:"cash_advance_deduction"`
	LateDeduction       decimal.Decimal `json:"late_deduction"`
	OtherDeductions     decimal.Decimal `json:"other_deductions"`

	GrossPay        decimal.Decimal `json:"gross_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`

	DaysWorked      decimal.Decimal `json:"days_worked"`
	UnpaidLeaveDays decimal.Decimal `json:"unpaid_leave_days"`
	LateMinutes     int             `json:"late_minutes"`

	Status     string  `json:"status"`
	ApprovedAt *string `json:"approved_at,omitempty"`
	ReleasedAt *string `json:"released_at,omitempty"`
}

type GeneratePayrollResponse struct {
	PeriodID    string                  `json:"period_id"`
	Generated   int                     `json:"generated"`
	Regenerated int                     `json:"regenerated"`
	Skipped     int                     `json:"skipped"`
	Records     []PayrollRecordResponse `json:"records"`
}

type ListPayrollRecordsResponse struct {
	Records []PayrollRecordResponse `json:"records"`
	Total   int64                   `json:"total"`
	Page    int                     `json:"page"`
	Limit   int                     `json:"limit"`
}

type PayrollFilter struct {
	PeriodID   string
	EmployeeID string
	Status     string
	Page       int
	Limit      int
}

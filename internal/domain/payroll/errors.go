package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this employee and period")
	ErrRecordNotDraft             = errors.New("payroll record is not in draft status")
	ErrRecordNotApproved          = errors.New("payroll record is not in approved status")
	ErrRecordImmutable            = errors.New("payroll record earnings and deductions are immutable after approval")
	ErrAttendanceSourceMissing    = errors.New("attendance aggregate unavailable for period")
	ErrPayslipAlreadyGenerated    = errors.New("payslip snapshot already generated for this record")
)

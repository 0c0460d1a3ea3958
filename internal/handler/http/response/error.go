package response

import (
	"errors"
	"net/http"

	"github.com/bayanihr/payroll-backend-go/internal/domain/advance"
	"github.com/bayanihr/payroll-backend-go/internal/domain/contribution"
	"github.com/bayanihr/payroll-backend-go/internal/domain/discipline"
	"github.com/bayanihr/payroll-backend-go/internal/domain/employee"
	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
	"github.com/bayanihr/payroll-backend-go/internal/domain/period"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNotPayable):
		BadRequest(w, "Employee is not payable", nil)

	// Pay period domain errors
	case errors.Is(err, period.ErrPayPeriodNotFound):
		NotFound(w, "Pay period not found")
	case errors.Is(err, period.ErrPayPeriodOverlaps):
		Conflict(w, "Pay period overlaps an existing period")
	case errors.Is(err, period.ErrPayPeriodClosed):
		Conflict(w, "Pay period is closed")
	case errors.Is(err, period.ErrPayPeriodNotClosed):
		Conflict(w, "Pay period still has unreleased payroll records")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this employee and period")
	case errors.Is(err, payroll.ErrRecordNotDraft):
		Conflict(w, "Payroll record is not in draft status")
	case errors.Is(err, payroll.ErrRecordNotApproved):
		Conflict(w, "Payroll record is not in approved status")
	case errors.Is(err, payroll.ErrRecordImmutable):
		Conflict(w, "Payroll record is immutable after approval")
	case errors.Is(err, payroll.ErrAttendanceSourceMissing):
		BadRequest(w, "Attendance aggregate unavailable for period", nil)
	case errors.Is(err, payroll.ErrPayslipAlreadyGenerated):
		Conflict(w, "Payslip already generated for this record")

	// Contribution domain errors
	case errors.Is(err, contribution.ErrScheduleNotFound):
		NotFound(w, "Contribution schedule not found")
	case errors.Is(err, contribution.ErrNegativeSalary),
		errors.Is(err, contribution.ErrNegativeTaxable):
		BadRequest(w, err.Error(), nil)

	// Salary advance domain errors
	case errors.Is(err, advance.ErrAdvanceNotFound):
		NotFound(w, "Salary advance not found")
	case errors.Is(err, advance.ErrInvalidStatusTransition):
		Conflict(w, "Illegal salary advance status transition")
	case errors.Is(err, advance.ErrAdvanceNotDisbursed):
		Conflict(w, "Salary advance is not disbursed")
	case errors.Is(err, advance.ErrRejectionReasonRequired):
		BadRequest(w, "Rejection reason is required", nil)
	case errors.Is(err, advance.ErrDeductionExceedsAmount):
		BadRequest(w, "Deduction per cutoff exceeds the advance amount", nil)

	// Disciplinary notice domain errors
	case errors.Is(err, discipline.ErrNoticeNotFound):
		NotFound(w, "Disciplinary notice not found")
	case errors.Is(err, discipline.ErrNoticeAlreadyResolved):
		Conflict(w, "Disciplinary notice is already resolved")
	case errors.Is(err, discipline.ErrExplanationNotAllowed):
		Conflict(w, "Explanation can only be submitted while the notice is issued")
	case errors.Is(err, discipline.ErrExplanationExists):
		Conflict(w, "An explanation has already been submitted for this notice")
	case errors.Is(err, discipline.ErrSanctionRequired),
		errors.Is(err, discipline.ErrInvalidSanction):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

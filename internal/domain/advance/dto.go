package advance

import (
	"github.com/bayanihr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RequestAdvanceRequest struct {
	EmployeeID         string          `json:"employee_id"`
	Amount             decimal.Decimal `json:"amount"`
	DeductionPerCutoff decimal.Decimal `json:"deduction_per_cutoff"`
	Purpose            *string         `json:"purpose,omitempty"`
}

func (r *RequestAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}
	if !r.DeductionPerCutoff.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "deduction_per_cutoff", Message: "must be greater than zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectAdvanceRequest struct {
	Reason string `json:"reason"`
}

type SalaryAdvanceResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	Amount             decimal.Decimal `json:"amount"`
	DeductionPerCutoff decimal.Decimal `json:"deduction_per_cutoff"`
	RemainingBalance   decimal.Decimal `json:"remaining_balance"`
	Status             string          `json:"status"`
	Purpose            *string         `json:"purpose,omitempty"`
	RejectionReason    *string         `json:"rejection_reason,omitempty"`
	RequestedAt        string          `json:"requested_at"`
	DisbursedAt        *string         `json:"disbursed_at,omitempty"`
	CompletedAt        *string         `json:"completed_at,omitempty"`
}

type AdvanceDeductionResponse struct {
	ID              string          `json:"id"`
	AdvanceID       string          `json:"advance_id"`
	PayrollRecordID string          `json:"payroll_record_id"`
	Amount          decimal.Decimal `json:"amount"`
	DeductedAt      string          `json:"deducted_at"`
}

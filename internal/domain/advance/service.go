package advance

import (
	"context"

	"github.com/shopspring/decimal"
)

type AdvanceService interface {
	RequestAdvance(ctx context.Context, req RequestAdvanceRequest) (SalaryAdvanceResponse, error)
	ApproveAdvance(ctx context.Context, advanceID string, actorID string) error
	RejectAdvance(ctx context.Context, advanceID string, actorID string, req RejectAdvanceRequest) error
	DisburseAdvance(ctx context.Context, advanceID string) error
	GetAdvance(ctx context.Context, advanceID string) (SalaryAdvanceResponse, error)
	ListAdvancesByEmployee(ctx context.Context, employeeID string) ([]SalaryAdvanceResponse, error)
	ListDeductions(ctx context.Context, advanceID string) ([]AdvanceDeductionResponse, error)

	// PlanDeductions returns the total the next payroll cutoff would take
	// from the employee's disbursed advances. Read-only; nothing commits.
	PlanDeductions(ctx context.Context, employeeID string) (decimal.Decimal, error)

	// ApplyDeductions commits one cutoff's deductions against the
	// employee's disbursed advances: each advance loses
	// min(deduction_per_cutoff, remaining_balance), gets an audit row tied
	// to the payroll record, and flips to fully_paid when the balance hits
	// exactly zero. Must run inside a transaction so payroll approval and
	// the ledger commit atomically.
	ApplyDeductions(ctx context.Context, employeeID string, payrollRecordID string) (decimal.Decimal, error)
}

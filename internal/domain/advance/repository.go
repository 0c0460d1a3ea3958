package advance

import (
	"context"

	"github.com/shopspring/decimal"
)

// AdvanceRepository defines data access for salary advances and their
// append-only deduction ledger.
type AdvanceRepository interface {
	Create(ctx context.Context, a SalaryAdvance) (SalaryAdvance, error)
	GetByID(ctx context.Context, id string) (SalaryAdvance, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]SalaryAdvance, error)

	// ListDisbursedByEmployeeForUpdate reads disbursed advances under a row
	// lock (FOR UPDATE). Must run inside a transaction; concurrent payroll
	// approvals serialize on these rows so no stale balance is decremented.
	ListDisbursedByEmployeeForUpdate(ctx context.Context, employeeID string) ([]SalaryAdvance, error)
	ListDisbursedByEmployee(ctx context.Context, employeeID string) ([]SalaryAdvance, error)

	UpdateStatus(ctx context.Context, id string, status Status, actorID string, rejectionReason *string) error

	// Disburse sets remaining_balance = amount exactly once and moves the
	// advance to disbursed.
	Disburse(ctx context.Context, id string) error

	// DecrementBalance subtracts amount from remaining_balance and fails
	// with ErrNegativeBalance if the result would be negative.
	DecrementBalance(ctx context.Context, id string, amount decimal.Decimal) (newBalance decimal.Decimal, err error)
	MarkFullyPaid(ctx context.Context, id string) error

	InsertDeduction(ctx context.Context, d AdvanceDeduction) (AdvanceDeduction, error)
	ListDeductionsByAdvance(ctx context.Context, advanceID string) ([]AdvanceDeduction, error)
}

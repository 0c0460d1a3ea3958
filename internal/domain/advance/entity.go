package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusDisbursed Status = "disbursed"
	StatusFullyPaid Status = "fully_paid"
)

var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected},
	StatusApproved:  {StatusDisbursed, StatusRejected},
	StatusDisbursed: {StatusFullyPaid},
	StatusRejected:  {},
	StatusFullyPaid: {},
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return len(statusTransitions[s]) == 0
}

// SalaryAdvance - an employer-issued loan repaid through fixed per-cutoff
// payroll deductions. RemainingBalance is set exactly once, at
// disbursement, and only ever decreases; it never goes below zero.
type SalaryAdvance struct {
	ID                 string
	EmployeeID         string
	Amount             decimal.Decimal
	DeductionPerCutoff decimal.Decimal
	RemainingBalance   decimal.Decimal
	Status             Status
	Purpose            *string
	RejectionReason    *string
	RequestedAt        time.Time
	ApprovedAt         *time.Time
	ApprovedBy         *string
	DisbursedAt        *time.Time
	CompletedAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PlannedDeduction is the amount the next payroll cutoff would take:
// min(deduction_per_cutoff, remaining_balance) for a disbursed advance,
// zero otherwise. Pure; commits happen only through the ledger.
func (a *SalaryAdvance) PlannedDeduction() decimal.Decimal {
	if a.Status != StatusDisbursed {
		return decimal.Zero
	}
	if a.RemainingBalance.LessThan(a.DeductionPerCutoff) {
		return a.RemainingBalance
	}
	return a.DeductionPerCutoff
}

// AdvanceDeduction - immutable audit row, one per committed deduction.
// Append-only; never updated or deleted.
type AdvanceDeduction struct {
	ID              string
	AdvanceID       string
	PayrollRecordID string
	Amount          decimal.Decimal
	DeductedAt      time.Time
}

package advance

import "errors"

var (
	ErrAdvanceNotFound         = errors.New("salary advance not found")
	ErrInvalidStatusTransition = errors.New("illegal salary advance status transition")
	ErrAdvanceNotDisbursed     = errors.New("salary advance is not disbursed")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	ErrDeductionExceedsAmount  = errors.New("deduction_per_cutoff exceeds amount")

	// ErrNegativeBalance is a consistency failure: it is unreachable through
	// the public API and aborts the surrounding transaction when hit.
	ErrNegativeBalance = errors.New("advance balance would become negative")
)

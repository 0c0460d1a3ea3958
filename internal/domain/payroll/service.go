package payroll

import "context"

type PayrollService interface {
	// GeneratePayroll computes draft records for every payable employee in
	// the period (or the requested subset). Existing drafts are recomputed
	// in place; approved and released records are never touched.
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) (GeneratePayrollResponse, error)

	GetPayrollRecord(ctx context.Context, recordID string) (PayrollRecordResponse, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordsResponse, error)

	// ApprovePayroll freezes a draft record and commits its advance
	// deductions to the ledger in the same transaction.
	ApprovePayroll(ctx context.Context, recordID string, actorID string) error

	// ReleasePayroll marks an approved record paid and writes its immutable
	// payslip snapshot.
	ReleasePayroll(ctx context.Context, recordID string, actorID string) error

	DeleteDraftPayroll(ctx context.Context, recordID string) error
}

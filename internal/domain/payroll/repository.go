package payroll

import "context"

// PayrollRepository defines data access for payroll records. Status
// transition side effects (advance commits, payslip snapshots) run inside
// a transaction carried on the context; see repository/postgresql.
type PayrollRepository interface {
	CreateRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetRecordByID(ctx context.Context, id string) (PayrollRecord, error)
	GetRecordByEmployeePeriod(ctx context.Context, employeeID, periodID string) (PayrollRecord, error)
	ListRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)

	// RegenerateRecord overwrites all computed fields of a draft record in
	// place, keeping its identity. Fails on non-draft records.
	RegenerateRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	DeleteDraftRecord(ctx context.Context, id string) error

	// MarkApproved and MarkReleased mutate only the status columns; they
	// refuse to touch records whose current status does not permit the
	// transition.
	MarkApproved(ctx context.Context, id, approvedBy string) error
	MarkReleased(ctx context.Context, id, releasedBy string) error

	CreatePayslipSnapshot(ctx context.Context, snapshot PayslipSnapshot) error
	CountUnreleasedByPeriod(ctx context.Context, periodID string) (int64, error)
}

// AttendanceSource is the external attendance collaborator, consumed only
// as per-period aggregates.
type AttendanceSource interface {
	GetAttendanceSummaries(ctx context.Context, periodID string, employeeIDs []string) ([]AttendanceSummary, error)
}

// LeaveSource contributes the single number "unpaid leave days in period".
type LeaveSource interface {
	GetLeaveSummaries(ctx context.Context, periodID string, employeeIDs []string) ([]LeaveSummary, error)
}

package contribution

import (
	"context"
	"time"
)

// ScheduleRepository stores versioned statutory tables. Historical payroll
// is recomputed against the schedule in force at the time, so rows are
// never updated in place; a new effective date supersedes the old one.
type ScheduleRepository interface {
	// GetActive returns the newest schedule whose effective date is on or
	// before asOf and which is flagged active.
	GetActive(ctx context.Context, asOf time.Time) (*Schedule, error)
	Create(ctx context.Context, schedule *Schedule) (*Schedule, error)
}

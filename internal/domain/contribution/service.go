package contribution

import (
	"context"
	"time"
)

type ScheduleService interface {
	// GetActiveSchedule returns the schedule a payroll run dated asOf would
	// compute against.
	GetActiveSchedule(ctx context.Context, asOf time.Time) (ScheduleResponse, error)

	// CreateSchedule persists a new schedule version seeded from the
	// built-in defaults, effective from the request date.
	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error)
}

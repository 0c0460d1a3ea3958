package period

import (
	"context"
	"time"
)

type PayPeriodRepository interface {
	Create(ctx context.Context, p PayPeriod) (PayPeriod, error)
	GetByID(ctx context.Context, id string) (PayPeriod, error)
	List(ctx context.Context) ([]PayPeriod, error)
	HasOverlap(ctx context.Context, kind CutoffKind, start, end time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

package period

import "context"

type PayPeriodService interface {
	CreatePayPeriod(ctx context.Context, req CreatePayPeriodRequest) (PayPeriodResponse, error)
	GetPayPeriod(ctx context.Context, periodID string) (PayPeriodResponse, error)
	ListPayPeriods(ctx context.Context) ([]PayPeriodResponse, error)

	// ClosePayPeriod moves a period to closed once every payroll record in
	// it has been released.
	ClosePayPeriod(ctx context.Context, periodID string) error
}

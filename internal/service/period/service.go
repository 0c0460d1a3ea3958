package period

import (
	"context"
	"fmt"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
	"github.com/bayanihr/payroll-backend-go/internal/domain/period"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
)

type PayPeriodServiceImpl struct {
	db *database.DB
	period.PayPeriodRepository
	payrollRepo payroll.PayrollRepository
}

func NewPayPeriodService(
	db *database.DB,
	periodRepo period.PayPeriodRepository,
	payrollRepo payroll.PayrollRepository,
) period.PayPeriodService {
	return &PayPeriodServiceImpl{
		db:                  db,
		PayPeriodRepository: periodRepo,
		payrollRepo:         payrollRepo,
	}
}

// CreatePayPeriod implements period.PayPeriodService.
func (s *PayPeriodServiceImpl) CreatePayPeriod(ctx context.Context, req period.CreatePayPeriodRequest) (period.PayPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return period.PayPeriodResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	kind := period.CutoffKind(req.CutoffKind)

	overlaps, err := s.PayPeriodRepository.HasOverlap(ctx, kind, start, end)
	if err != nil {
		return period.PayPeriodResponse{}, fmt.Errorf("failed to check period overlap: %w", err)
	}
	if overlaps {
		return period.PayPeriodResponse{}, period.ErrPayPeriodOverlaps
	}

	created, err := s.PayPeriodRepository.Create(ctx, period.PayPeriod{
		StartDate:  start,
		EndDate:    end,
		CutoffKind: kind,
		Status:     period.StatusOpen,
	})
	if err != nil {
		return period.PayPeriodResponse{}, fmt.Errorf("failed to create pay period: %w", err)
	}
	return toPeriodResponse(created), nil
}

// GetPayPeriod implements period.PayPeriodService.
func (s *PayPeriodServiceImpl) GetPayPeriod(ctx context.Context, periodID string) (period.PayPeriodResponse, error) {
	p, err := s.PayPeriodRepository.GetByID(ctx, periodID)
	if err != nil {
		return period.PayPeriodResponse{}, err
	}
	return toPeriodResponse(p), nil
}

// ListPayPeriods implements period.PayPeriodService.
func (s *PayPeriodServiceImpl) ListPayPeriods(ctx context.Context) ([]period.PayPeriodResponse, error) {
	periods, err := s.PayPeriodRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}

	responses := make([]period.PayPeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, toPeriodResponse(p))
	}
	return responses, nil
}

// ClosePayPeriod implements period.PayPeriodService. A period closes only
// when nothing in it is still draft or approved.
func (s *PayPeriodServiceImpl) ClosePayPeriod(ctx context.Context, periodID string) error {
	p, err := s.PayPeriodRepository.GetByID(ctx, periodID)
	if err != nil {
		return err
	}
	if p.Status == period.StatusClosed {
		return period.ErrPayPeriodClosed
	}

	unreleased, err := s.payrollRepo.CountUnreleasedByPeriod(ctx, periodID)
	if err != nil {
		return fmt.Errorf("failed to count unreleased records: %w", err)
	}
	if unreleased > 0 {
		return period.ErrPayPeriodNotClosed
	}

	if err := s.PayPeriodRepository.UpdateStatus(ctx, periodID, period.StatusClosed); err != nil {
		return fmt.Errorf("failed to close pay period: %w", err)
	}
	return nil
}

func toPeriodResponse(p period.PayPeriod) period.PayPeriodResponse {
	return period.PayPeriodResponse{
		ID:         p.ID,
		StartDate:  p.StartDate.Format("2006-01-02"),
		EndDate:    p.EndDate.Format("2006-01-02"),
		CutoffKind: string(p.CutoffKind),
		Status:     string(p.Status),
	}
}

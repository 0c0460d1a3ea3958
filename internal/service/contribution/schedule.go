package contribution

import (
	"context"
	"fmt"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/domain/contribution"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
)

type ScheduleServiceImpl struct {
	db *database.DB
	contribution.ScheduleRepository
}

func NewScheduleService(db *database.DB, scheduleRepo contribution.ScheduleRepository) contribution.ScheduleService {
	return &ScheduleServiceImpl{db: db, ScheduleRepository: scheduleRepo}
}

// GetActiveSchedule implements contribution.ScheduleService. When no row is
// stored yet the built-in defaults answer, same as payroll generation.
func (s *ScheduleServiceImpl) GetActiveSchedule(ctx context.Context, asOf time.Time) (contribution.ScheduleResponse, error) {
	schedule, err := s.ScheduleRepository.GetActive(ctx, asOf)
	if err != nil {
		if err == contribution.ErrScheduleNotFound {
			return toScheduleResponse(contribution.DefaultSchedule()), nil
		}
		return contribution.ScheduleResponse{}, fmt.Errorf("failed to get active schedule: %w", err)
	}
	return toScheduleResponse(schedule), nil
}

// CreateSchedule implements contribution.ScheduleService.
func (s *ScheduleServiceImpl) CreateSchedule(ctx context.Context, req contribution.CreateScheduleRequest) (contribution.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return contribution.ScheduleResponse{}, err
	}

	effectiveDate, _ := time.Parse("2006-01-02", req.EffectiveDate)

	schedule := contribution.DefaultSchedule()
	schedule.EffectiveDate = effectiveDate
	schedule.IsActive = true

	created, err := s.ScheduleRepository.Create(ctx, schedule)
	if err != nil {
		return contribution.ScheduleResponse{}, fmt.Errorf("failed to create schedule: %w", err)
	}
	return toScheduleResponse(created), nil
}

func toScheduleResponse(s *contribution.Schedule) contribution.ScheduleResponse {
	return contribution.ScheduleResponse{
		ID:            s.ID,
		EffectiveDate: s.EffectiveDate.Format("2006-01-02"),
		IsActive:      s.IsActive,

		SSSBracketCount:    len(s.SSSBrackets),
		SSSEmployeeRate:    s.SSSEmployeeRate,
		SSSMonthlyShareCap: s.SSSMonthlyShareCap,

		PhilHealthFloor:           s.PhilHealthFloor,
		PhilHealthCeiling:         s.PhilHealthCeiling,
		PhilHealthPremiumRate:     s.PhilHealthPremiumRate,
		PhilHealthMonthlyShareCap: s.PhilHealthMonthlyShareCap,

		PagIBIGThreshold:      s.PagIBIGThreshold,
		PagIBIGMaxCredit:      s.PagIBIGMaxCredit,
		PagIBIGMonthlyCeiling: s.PagIBIGMonthlyCeiling,

		TaxBracketCount: len(s.TaxBrackets),
	}
}

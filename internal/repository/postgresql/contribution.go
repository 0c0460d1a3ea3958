package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/domain/contribution"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// scheduleRepository persists versioned statutory tables. The bracket
// slices live in JSONB columns; scalar parameters get their own columns so
// they stay queryable.
type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) contribution.ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) GetActive(ctx context.Context, asOf time.Time) (*contribution.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, effective_date, is_active,
			   sss_brackets, sss_employee_rate, sss_monthly_share_cap,
			   philhealth_floor, philhealth_ceiling, philhealth_premium_rate, philhealth_monthly_share_cap,
			   pagibig_threshold, pagibig_rate_low, pagibig_rate_high,
			   pagibig_max_credit, pagibig_monthly_ceiling,
			   tax_brackets, created_at
		FROM contribution_schedules
		WHERE is_active = TRUE AND effective_date <= $1
		ORDER BY effective_date DESC
		LIMIT 1
	`

	var s contribution.Schedule
	var sssJSON, taxJSON []byte
	err := q.QueryRow(ctx, query, asOf).Scan(
		&s.ID, &s.EffectiveDate, &s.IsActive,
		&sssJSON, &s.SSSEmployeeRate, &s.SSSMonthlyShareCap,
		&s.PhilHealthFloor, &s.PhilHealthCeiling, &s.PhilHealthPremiumRate, &s.PhilHealthMonthlyShareCap,
		&s.PagIBIGThreshold, &s.PagIBIGRateLow, &s.PagIBIGRateHigh,
		&s.PagIBIGMaxCredit, &s.PagIBIGMonthlyCeiling,
		&taxJSON, &s.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, contribution.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get contribution schedule: %w", err)
	}

	if err := json.Unmarshal(sssJSON, &s.SSSBrackets); err != nil {
		return nil, fmt.Errorf("failed to decode SSS brackets: %w", err)
	}
	if err := json.Unmarshal(taxJSON, &s.TaxBrackets); err != nil {
		return nil, fmt.Errorf("failed to decode tax brackets: %w", err)
	}
	return &s, nil
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *contribution.Schedule) (*contribution.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	sssJSON, err := json.Marshal(schedule.SSSBrackets)
	if err != nil {
		return nil, fmt.Errorf("failed to encode SSS brackets: %w", err)
	}
	taxJSON, err := json.Marshal(schedule.TaxBrackets)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tax brackets: %w", err)
	}

	query := `
		INSERT INTO contribution_schedules (
			effective_date, is_active,
			sss_brackets, sss_employee_rate, sss_monthly_share_cap,
			philhealth_floor, philhealth_ceiling, philhealth_premium_rate, philhealth_monthly_share_cap,
			pagibig_threshold, pagibig_rate_low, pagibig_rate_high,
			pagibig_max_credit, pagibig_monthly_ceiling,
			tax_brackets
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`

	created := *schedule
	err = q.QueryRow(ctx, query,
		schedule.EffectiveDate, schedule.IsActive,
		sssJSON, schedule.SSSEmployeeRate, schedule.SSSMonthlyShareCap,
		schedule.PhilHealthFloor, schedule.PhilHealthCeiling, schedule.PhilHealthPremiumRate, schedule.PhilHealthMonthlyShareCap,
		schedule.PagIBIGThreshold, schedule.PagIBIGRateLow, schedule.PagIBIGRateHigh,
		schedule.PagIBIGMaxCredit, schedule.PagIBIGMonthlyCeiling,
		taxJSON,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create contribution schedule: %w", err)
	}
	return &created, nil
}

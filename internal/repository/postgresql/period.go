package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/domain/period"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payPeriodRepository struct {
	db *database.DB
}

func NewPayPeriodRepository(db *database.DB) period.PayPeriodRepository {
	return &payPeriodRepository{db: db}
}

func (r *payPeriodRepository) Create(ctx context.Context, p period.PayPeriod) (period.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_periods (start_date, end_date, cutoff_kind, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, start_date, end_date, cutoff_kind, status, created_at, updated_at
	`

	var created period.PayPeriod
	err := q.QueryRow(ctx, query, p.StartDate, p.EndDate, p.CutoffKind, p.Status).Scan(
		&created.ID, &created.StartDate, &created.EndDate, &created.CutoffKind,
		&created.Status, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return period.PayPeriod{}, fmt.Errorf("failed to create pay period: %w", err)
	}
	return created, nil
}

func (r *payPeriodRepository) GetByID(ctx context.Context, id string) (period.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, start_date, end_date, cutoff_kind, status, created_at, updated_at
		FROM pay_periods
		WHERE id = $1
	`

	var p period.PayPeriod
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.StartDate, &p.EndDate, &p.CutoffKind, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return period.PayPeriod{}, period.ErrPayPeriodNotFound
		}
		return period.PayPeriod{}, fmt.Errorf("failed to get pay period: %w", err)
	}
	return p, nil
}

func (r *payPeriodRepository) List(ctx context.Context) ([]period.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, start_date, end_date, cutoff_kind, status, created_at, updated_at
		FROM pay_periods
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}
	defer rows.Close()

	var periods []period.PayPeriod
	for rows.Next() {
		var p period.PayPeriod
		if err := rows.Scan(&p.ID, &p.StartDate, &p.EndDate, &p.CutoffKind, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pay period: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (r *payPeriodRepository) HasOverlap(ctx context.Context, kind period.CutoffKind, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM pay_periods
			WHERE cutoff_kind = $1
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, kind, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pay period overlap: %w", err)
	}
	return exists, nil
}

func (r *payPeriodRepository) UpdateStatus(ctx context.Context, id string, status period.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE pay_periods SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update pay period status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return period.ErrPayPeriodNotFound
	}
	return nil
}

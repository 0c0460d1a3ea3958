package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/bayanihr/payroll-backend-go/internal/domain/discipline"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type noticeRepository struct {
	db *database.DB
}

func NewNoticeRepository(db *database.DB) discipline.NoticeRepository {
	return &noticeRepository{db: db}
}

const noticeColumns = `
	id, employee_id, violation, issued_at, response_deadline, status,
	sanction, resolution_notes, issued_by, resolved_at, resolved_by,
	created_at, updated_at
`

func scanNotice(row pgx.Row) (discipline.DisciplinaryNotice, error) {
	var n discipline.DisciplinaryNotice
	err := row.Scan(
		&n.ID, &n.EmployeeID, &n.Violation, &n.IssuedAt, &n.ResponseDeadline, &n.Status,
		&n.Sanction, &n.ResolutionNotes, &n.IssuedBy, &n.ResolvedAt, &n.ResolvedBy,
		&n.CreatedAt, &n.UpdatedAt,
	)
	return n, err
}

func (r *noticeRepository) CreateNotice(ctx context.Context, n discipline.DisciplinaryNotice) (discipline.DisciplinaryNotice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO disciplinary_notices (employee_id, violation, issued_at, response_deadline, status, issued_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + noticeColumns

	created, err := scanNotice(q.QueryRow(ctx, query,
		n.EmployeeID, n.Violation, n.IssuedAt, n.ResponseDeadline, n.Status, n.IssuedBy,
	))
	if err != nil {
		return discipline.DisciplinaryNotice{}, fmt.Errorf("failed to create disciplinary notice: %w", err)
	}
	return created, nil
}

func (r *noticeRepository) GetNoticeByID(ctx context.Context, id string) (discipline.DisciplinaryNotice, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + noticeColumns + ` FROM disciplinary_notices WHERE id = $1`

	n, err := scanNotice(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return discipline.DisciplinaryNotice{}, discipline.ErrNoticeNotFound
		}
		return discipline.DisciplinaryNotice{}, fmt.Errorf("failed to get disciplinary notice: %w", err)
	}
	return n, nil
}

func (r *noticeRepository) ListNoticesByEmployee(ctx context.Context, employeeID string) ([]discipline.DisciplinaryNotice, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + noticeColumns + ` FROM disciplinary_notices WHERE employee_id = $1 ORDER BY issued_at DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list disciplinary notices: %w", err)
	}
	defer rows.Close()

	var notices []discipline.DisciplinaryNotice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan disciplinary notice: %w", err)
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

func (r *noticeRepository) UpdateNoticeStatus(ctx context.Context, id string, status discipline.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE disciplinary_notices SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update notice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return discipline.ErrNoticeNotFound
	}
	return nil
}

func (r *noticeRepository) ResolveNotice(ctx context.Context, id string, sanction discipline.Sanction, notes *string, resolvedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE disciplinary_notices
		SET status = 'resolved', sanction = $2, resolution_notes = $3,
			resolved_at = NOW(), resolved_by = $4, updated_at = NOW()
		WHERE id = $1 AND status <> 'resolved'
	`

	tag, err := q.Exec(ctx, query, id, sanction, notes, resolvedBy)
	if err != nil {
		return fmt.Errorf("failed to resolve disciplinary notice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetNoticeByID(ctx, id); err != nil {
			return err
		}
		return discipline.ErrNoticeAlreadyResolved
	}
	return nil
}

func (r *noticeRepository) CreateExplanation(ctx context.Context, e discipline.Explanation) (discipline.Explanation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notice_explanations (notice_id, text, submitted_at, is_late)
		VALUES ($1, $2, $3, $4)
		RETURNING id, notice_id, text, submitted_at, is_late
	`

	var created discipline.Explanation
	err := q.QueryRow(ctx, query, e.NoticeID, e.Text, e.SubmittedAt, e.IsLate).Scan(
		&created.ID, &created.NoticeID, &created.Text, &created.SubmittedAt, &created.IsLate,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_explanation_notice") {
			return discipline.Explanation{}, discipline.ErrExplanationExists
		}
		return discipline.Explanation{}, fmt.Errorf("failed to create explanation: %w", err)
	}
	return created, nil
}

func (r *noticeRepository) GetExplanationByNotice(ctx context.Context, noticeID string) (discipline.Explanation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, notice_id, text, submitted_at, is_late FROM notice_explanations WHERE notice_id = $1`

	var e discipline.Explanation
	err := q.QueryRow(ctx, query, noticeID).Scan(&e.ID, &e.NoticeID, &e.Text, &e.SubmittedAt, &e.IsLate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return discipline.Explanation{}, discipline.ErrNoticeNotFound
		}
		return discipline.Explanation{}, fmt.Errorf("failed to get explanation: %w", err)
	}
	return e, nil
}

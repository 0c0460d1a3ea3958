package discipline

import "context"

type NoticeRepository interface {
	CreateNotice(ctx context.Context, n DisciplinaryNotice) (DisciplinaryNotice, error)
	GetNoticeByID(ctx context.Context, id string) (DisciplinaryNotice, error)
	ListNoticesByEmployee(ctx context.Context, employeeID string) ([]DisciplinaryNotice, error)
	UpdateNoticeStatus(ctx context.Context, id string, status Status) error
	ResolveNotice(ctx context.Context, id string, sanction Sanction, notes *string, resolvedBy string) error

	// CreateExplanation enforces at-most-one per notice; a second insert
	// fails with ErrExplanationExists, it never overwrites.
	CreateExplanation(ctx context.Context, e Explanation) (Explanation, error)
	GetExplanationByNotice(ctx context.Context, noticeID string) (Explanation, error)
}

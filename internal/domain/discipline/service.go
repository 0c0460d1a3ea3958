package discipline

import "context"

type DisciplineService interface {
	IssueNotice(ctx context.Context, req IssueNoticeRequest, issuedBy string) (NoticeResponse, error)
	GetNotice(ctx context.Context, noticeID string) (NoticeResponse, error)
	ListNoticesByEmployee(ctx context.Context, employeeID string) ([]NoticeResponse, error)

	// SubmitExplanation accepts at most one explanation per notice, only
	// while the notice is still issued. Submissions after the response
	// deadline are accepted but flagged late.
	SubmitExplanation(ctx context.Context, noticeID string, req SubmitExplanationRequest) (ExplanationResponse, error)
	GetExplanation(ctx context.Context, noticeID string) (ExplanationResponse, error)

	ResolveNotice(ctx context.Context, noticeID string, req ResolveNoticeRequest, resolvedBy string) error
}

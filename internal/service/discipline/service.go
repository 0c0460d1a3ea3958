package discipline

import (
	"context"
	"fmt"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/domain/discipline"
	"github.com/bayanihr/payroll-backend-go/internal/domain/employee"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/validator"
)

type DisciplineServiceImpl struct {
	db *database.DB
	discipline.NoticeRepository
	employee.EmployeeRepository

	// now is swappable for deadline tests.
	now func() time.Time
}

func NewDisciplineService(
	db *database.DB,
	noticeRepo discipline.NoticeRepository,
	employeeRepo employee.EmployeeRepository,
) discipline.DisciplineService {
	return &DisciplineServiceImpl{
		db:                 db,
		NoticeRepository:   noticeRepo,
		EmployeeRepository: employeeRepo,
		now:                time.Now,
	}
}

// IssueNotice implements discipline.DisciplineService. The response deadline
// is fixed at issuance; nothing ever moves it.
func (s *DisciplineServiceImpl) IssueNotice(ctx context.Context, req discipline.IssueNoticeRequest, issuedBy string) (discipline.NoticeResponse, error) {
	if err := req.Validate(); err != nil {
		return discipline.NoticeResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return discipline.NoticeResponse{}, err
	}

	issuedAt := s.now()
	created, err := s.NoticeRepository.CreateNotice(ctx, discipline.DisciplinaryNotice{
		EmployeeID:       req.EmployeeID,
		Violation:        req.Violation,
		IssuedAt:         issuedAt,
		ResponseDeadline: discipline.DeadlineFor(issuedAt),
		Status:           discipline.StatusIssued,
		IssuedBy:         issuedBy,
	})
	if err != nil {
		return discipline.NoticeResponse{}, fmt.Errorf("failed to issue disciplinary notice: %w", err)
	}
	return toNoticeResponse(created), nil
}

// GetNotice implements discipline.DisciplineService.
func (s *DisciplineServiceImpl) GetNotice(ctx context.Context, noticeID string) (discipline.NoticeResponse, error) {
	n, err := s.NoticeRepository.GetNoticeByID(ctx, noticeID)
	if err != nil {
		return discipline.NoticeResponse{}, err
	}
	return toNoticeResponse(n), nil
}

// ListNoticesByEmployee implements discipline.DisciplineService.
func (s *DisciplineServiceImpl) ListNoticesByEmployee(ctx context.Context, employeeID string) ([]discipline.NoticeResponse, error) {
	notices, err := s.NoticeRepository.ListNoticesByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list disciplinary notices: %w", err)
	}

	responses := make([]discipline.NoticeResponse, 0, len(notices))
	for _, n := range notices {
		responses = append(responses, toNoticeResponse(n))
	}
	return responses, nil
}

// SubmitExplanation implements discipline.DisciplineService. A submission
// after the deadline still lands, flagged late; the window gates the flag,
// not acceptance. Resolution is the only thing that shuts the door.
func (s *DisciplineServiceImpl) SubmitExplanation(ctx context.Context, noticeID string, req discipline.SubmitExplanationRequest) (discipline.ExplanationResponse, error) {
	if err := req.Validate(); err != nil {
		return discipline.ExplanationResponse{}, err
	}

	n, err := s.NoticeRepository.GetNoticeByID(ctx, noticeID)
	if err != nil {
		return discipline.ExplanationResponse{}, err
	}
	if n.Status != discipline.StatusIssued {
		return discipline.ExplanationResponse{}, discipline.ErrExplanationNotAllowed
	}

	submittedAt := s.now()
	created, err := s.NoticeRepository.CreateExplanation(ctx, discipline.Explanation{
		NoticeID:    noticeID,
		Text:        req.Text,
		SubmittedAt: submittedAt,
		IsLate:      submittedAt.After(n.ResponseDeadline),
	})
	if err != nil {
		return discipline.ExplanationResponse{}, err
	}

	if err := s.NoticeRepository.UpdateNoticeStatus(ctx, noticeID, discipline.StatusExplanationReceived); err != nil {
		return discipline.ExplanationResponse{}, fmt.Errorf("failed to update notice status: %w", err)
	}
	return toExplanationResponse(created), nil
}

// GetExplanation implements discipline.DisciplineService.
func (s *DisciplineServiceImpl) GetExplanation(ctx context.Context, noticeID string) (discipline.ExplanationResponse, error) {
	e, err := s.NoticeRepository.GetExplanationByNotice(ctx, noticeID)
	if err != nil {
		return discipline.ExplanationResponse{}, err
	}
	return toExplanationResponse(e), nil
}

// ResolveNotice implements discipline.DisciplineService. Resolution always
// carries a sanction; HR may resolve straight from issued when no
// explanation ever arrives.
func (s *DisciplineServiceImpl) ResolveNotice(ctx context.Context, noticeID string, req discipline.ResolveNoticeRequest, resolvedBy string) error {
	if validator.IsEmpty(req.Sanction) {
		return discipline.ErrSanctionRequired
	}
	if !discipline.Sanction(req.Sanction).Valid() {
		return discipline.ErrInvalidSanction
	}

	n, err := s.NoticeRepository.GetNoticeByID(ctx, noticeID)
	if err != nil {
		return err
	}
	if !n.Status.CanTransitionTo(discipline.StatusResolved) {
		return discipline.ErrNoticeAlreadyResolved
	}

	if err := s.NoticeRepository.ResolveNotice(ctx, noticeID, discipline.Sanction(req.Sanction), req.Notes, resolvedBy); err != nil {
		return fmt.Errorf("failed to resolve disciplinary notice: %w", err)
	}
	return nil
}

func toNoticeResponse(n discipline.DisciplinaryNotice) discipline.NoticeResponse {
	resp := discipline.NoticeResponse{
		ID:               n.ID,
		EmployeeID:       n.EmployeeID,
		Violation:        n.Violation,
		IssuedAt:         n.IssuedAt.Format(time.RFC3339),
		ResponseDeadline: n.ResponseDeadline.Format(time.RFC3339),
		Status:           string(n.Status),
		ResolutionNotes:  n.ResolutionNotes,
	}
	if n.Sanction != nil {
		sanction := string(*n.Sanction)
		resp.Sanction = &sanction
	}
	if n.ResolvedAt != nil {
		formatted := n.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &formatted
	}
	return resp
}

func toExplanationResponse(e discipline.Explanation) discipline.ExplanationResponse {
	return discipline.ExplanationResponse{
		ID:          e.ID,
		NoticeID:    e.NoticeID,
		Text:        e.Text,
		SubmittedAt: e.SubmittedAt.Format(time.RFC3339),
		IsLate:      e.IsLate,
	}
}

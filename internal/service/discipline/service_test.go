package discipline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/domain/discipline"
	"github.com/bayanihr/payroll-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== IN-MEMORY FAKES =====

type fakeNoticeRepo struct {
	notices      map[string]*discipline.DisciplinaryNotice
	explanations map[string]discipline.Explanation
	nextID       int
}

func newFakeNoticeRepo() *fakeNoticeRepo {
	return &fakeNoticeRepo{
		notices:      make(map[string]*discipline.DisciplinaryNotice),
		explanations: make(map[string]discipline.Explanation),
	}
}

func (f *fakeNoticeRepo) CreateNotice(_ context.Context, n discipline.DisciplinaryNotice) (discipline.DisciplinaryNotice, error) {
	f.nextID++
	n.ID = fmt.Sprintf("ntc-%d", f.nextID)
	n.CreatedAt = n.IssuedAt
	n.UpdatedAt = n.IssuedAt
	f.notices[n.ID] = &n
	return n, nil
}

func (f *fakeNoticeRepo) GetNoticeByID(_ context.Context, id string) (discipline.DisciplinaryNotice, error) {
	n, ok := f.notices[id]
	if !ok {
		return discipline.DisciplinaryNotice{}, discipline.ErrNoticeNotFound
	}
	return *n, nil
}

func (f *fakeNoticeRepo) ListNoticesByEmployee(_ context.Context, employeeID string) ([]discipline.DisciplinaryNotice, error) {
	var out []discipline.DisciplinaryNotice
	for _, n := range f.notices {
		if n.EmployeeID == employeeID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNoticeRepo) UpdateNoticeStatus(_ context.Context, id string, status discipline.Status) error {
	n, ok := f.notices[id]
	if !ok {
		return discipline.ErrNoticeNotFound
	}
	n.Status = status
	return nil
}

func (f *fakeNoticeRepo) ResolveNotice(_ context.Context, id string, sanction discipline.Sanction, notes *string, resolvedBy string) error {
	n, ok := f.notices[id]
	if !ok {
		return discipline.ErrNoticeNotFound
	}
	if n.Status == discipline.StatusResolved {
		return discipline.ErrNoticeAlreadyResolved
	}
	now := time.Now()
	n.Status = discipline.StatusResolved
	n.Sanction = &sanction
	n.ResolutionNotes = notes
	n.ResolvedAt = &now
	n.ResolvedBy = &resolvedBy
	return nil
}

func (f *fakeNoticeRepo) CreateExplanation(_ context.Context, e discipline.Explanation) (discipline.Explanation, error) {
	if _, exists := f.explanations[e.NoticeID]; exists {
		return discipline.Explanation{}, discipline.ErrExplanationExists
	}
	e.ID = fmt.Sprintf("exp-%s", e.NoticeID)
	f.explanations[e.NoticeID] = e
	return e, nil
}

func (f *fakeNoticeRepo) GetExplanationByNotice(_ context.Context, noticeID string) (discipline.Explanation, error) {
	e, ok := f.explanations[noticeID]
	if !ok {
		return discipline.Explanation{}, discipline.ErrNoticeNotFound
	}
	return e, nil
}

type fakeEmployeeRepo struct{}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if id != "emp-1" {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: "emp-1", EmploymentStatus: employee.EmploymentStatusActive}, nil
}

func (f *fakeEmployeeRepo) GetPayable(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
}

var issuedAt = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

func newTestService(now time.Time) (*DisciplineServiceImpl, *fakeNoticeRepo) {
	repo := newFakeNoticeRepo()
	svc := NewDisciplineService(nil, repo, &fakeEmployeeRepo{}).(*DisciplineServiceImpl)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func issueNotice(t *testing.T, svc *DisciplineServiceImpl) discipline.NoticeResponse {
	t.Helper()
	created, err := svc.IssueNotice(context.Background(), discipline.IssueNoticeRequest{
		EmployeeID: "emp-1",
		Violation:  "habitual tardiness",
	}, "hr-1")
	require.NoError(t, err)
	return created
}

// ===== ISSUANCE =====

func TestDisciplineService_IssueNotice_FixesDeadline(t *testing.T) {
	svc, _ := newTestService(issuedAt)

	created := issueNotice(t, svc)
	assert.Equal(t, "issued", created.Status)
	assert.Equal(t, issuedAt.Format(time.RFC3339), created.IssuedAt)
	assert.Equal(t, issuedAt.AddDate(0, 0, 5).Format(time.RFC3339), created.ResponseDeadline)
}

func TestDisciplineService_IssueNotice_UnknownEmployee(t *testing.T) {
	svc, _ := newTestService(issuedAt)

	_, err := svc.IssueNotice(context.Background(), discipline.IssueNoticeRequest{
		EmployeeID: "emp-404",
		Violation:  "x",
	}, "hr-1")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

// ===== EXPLANATIONS =====

func TestDisciplineService_SubmitExplanation_OnTime(t *testing.T) {
	svc, _ := newTestService(issuedAt)
	ctx := context.Background()

	created := issueNotice(t, svc)

	// Day 3 of a 5-day window.
	svc.now = func() time.Time { return issuedAt.AddDate(0, 0, 3) }

	exp, err := svc.SubmitExplanation(ctx, created.ID, discipline.SubmitExplanationRequest{Text: "traffic on EDSA"})
	require.NoError(t, err)
	assert.False(t, exp.IsLate)

	got, err := svc.GetNotice(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "explanation_received", got.Status)
	assert.Equal(t, created.ResponseDeadline, got.ResponseDeadline, "the deadline never moves")
}

func TestDisciplineService_SubmitExplanation_AfterDeadlineIsLate(t *testing.T) {
	svc, _ := newTestService(issuedAt)
	ctx := context.Background()

	created := issueNotice(t, svc)

	// Day 6: past the window but the notice is still open, so the
	// submission lands flagged late.
	svc.now = func() time.Time { return issuedAt.AddDate(0, 0, 6) }

	exp, err := svc.SubmitExplanation(ctx, created.ID, discipline.SubmitExplanationRequest{Text: "was hospitalized"})
	require.NoError(t, err)
	assert.True(t, exp.IsLate)
}

func TestDisciplineService_SubmitExplanation_AtMostOne(t *testing.T) {
	svc, _ := newTestService(issuedAt)
	ctx := context.Background()

	created := issueNotice(t, svc)

	_, err := svc.SubmitExplanation(ctx, created.ID, discipline.SubmitExplanationRequest{Text: "first"})
	require.NoError(t, err)

	// Once the explanation is in, the notice is no longer issued.
	_, err = svc.SubmitExplanation(ctx, created.ID, discipline.SubmitExplanationRequest{Text: "second"})
	assert.ErrorIs(t, err, discipline.ErrExplanationNotAllowed)
}

func TestDisciplineService_SubmitExplanation_AfterResolutionRejected(t *testing.T) {
	svc, _ := newTestService(issuedAt)
	ctx := context.Background()

	created := issueNotice(t, svc)

	require.NoError(t, svc.ResolveNotice(ctx, created.ID, discipline.ResolveNoticeRequest{
		Sanction: "verbal_warning",
	}, "hr-1"))

	_, err := svc.SubmitExplanation(ctx, created.ID, discipline.SubmitExplanationRequest{Text: "too late"})
	assert.ErrorIs(t, err, discipline.ErrExplanationNotAllowed)
}

// ===== RESOLUTION =====

func TestDisciplineService_ResolveNotice_RequiresValidSanction(t *testing.T) {
	svc, _ := newTestService(issuedAt)
	ctx := context.Background()

	created := issueNotice(t, svc)

	err := svc.ResolveNotice(ctx, created.ID, discipline.ResolveNoticeRequest{}, "hr-1")
	assert.ErrorIs(t, err, discipline.ErrSanctionRequired)

	err = svc.ResolveNotice(ctx, created.ID, discipline.ResolveNoticeRequest{Sanction: "public_flogging"}, "hr-1")
	assert.ErrorIs(t, err, discipline.ErrInvalidSanction)

	got, err := svc.GetNotice(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "issued", got.Status)
}

func TestDisciplineService_ResolveNotice_DirectlyFromIssued(t *testing.T) {
	svc, _ := newTestService(issuedAt)
	ctx := context.Background()

	created := issueNotice(t, svc)

	notes := "no explanation received within the window"
	require.NoError(t, svc.ResolveNotice(ctx, created.ID, discipline.ResolveNoticeRequest{
		Sanction: "written_warning",
		Notes:    &notes,
	}, "hr-1"))

	got, err := svc.GetNotice(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "resolved", got.Status)
	require.NotNil(t, got.Sanction)
	assert.Equal(t, "written_warning", *got.Sanction)
}

func TestDisciplineService_ResolveNotice_Twice(t *testing.T) {
	svc, _ := newTestService(issuedAt)
	ctx := context.Background()

	created := issueNotice(t, svc)

	require.NoError(t, svc.ResolveNotice(ctx, created.ID, discipline.ResolveNoticeRequest{Sanction: "suspension"}, "hr-1"))
	err := svc.ResolveNotice(ctx, created.ID, discipline.ResolveNoticeRequest{Sanction: "suspension"}, "hr-1")
	assert.ErrorIs(t, err, discipline.ErrNoticeAlreadyResolved)
}

func TestDisciplineService_FullTwinNoticeFlow(t *testing.T) {
	svc, _ := newTestService(issuedAt)
	ctx := context.Background()

	created := issueNotice(t, svc)

	svc.now = func() time.Time { return issuedAt.AddDate(0, 0, 2) }
	_, err := svc.SubmitExplanation(ctx, created.ID, discipline.SubmitExplanationRequest{Text: "explanation"})
	require.NoError(t, err)

	require.NoError(t, svc.ResolveNotice(ctx, created.ID, discipline.ResolveNoticeRequest{Sanction: "verbal_warning"}, "hr-1"))

	got, err := svc.GetNotice(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "resolved", got.Status)

	exp, err := svc.GetExplanation(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, exp.IsLate)
}

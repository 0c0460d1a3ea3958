package advance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/domain/advance"
	"github.com/bayanihr/payroll-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== IN-MEMORY FAKES =====

type fakeAdvanceRepo struct {
	advances   map[string]*advance.SalaryAdvance
	deductions []advance.AdvanceDeduction
	nextID     int
}

func newFakeAdvanceRepo() *fakeAdvanceRepo {
	return &fakeAdvanceRepo{advances: make(map[string]*advance.SalaryAdvance)}
}

func (f *fakeAdvanceRepo) Create(_ context.Context, a advance.SalaryAdvance) (advance.SalaryAdvance, error) {
	f.nextID++
	a.ID = fmt.Sprintf("adv-%d", f.nextID)
	a.RequestedAt = time.Now()
	a.CreatedAt = a.RequestedAt
	a.UpdatedAt = a.RequestedAt
	f.advances[a.ID] = &a
	return a, nil
}

func (f *fakeAdvanceRepo) GetByID(_ context.Context, id string) (advance.SalaryAdvance, error) {
	a, ok := f.advances[id]
	if !ok {
		return advance.SalaryAdvance{}, advance.ErrAdvanceNotFound
	}
	return *a, nil
}

func (f *fakeAdvanceRepo) ListByEmployee(_ context.Context, employeeID string) ([]advance.SalaryAdvance, error) {
	var out []advance.SalaryAdvance
	for _, a := range f.advances {
		if a.EmployeeID == employeeID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAdvanceRepo) ListDisbursedByEmployee(ctx context.Context, employeeID string) ([]advance.SalaryAdvance, error) {
	var out []advance.SalaryAdvance
	for _, a := range f.advances {
		if a.EmployeeID == employeeID && a.Status == advance.StatusDisbursed {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAdvanceRepo) ListDisbursedByEmployeeForUpdate(ctx context.Context, employeeID string) ([]advance.SalaryAdvance, error) {
	return f.ListDisbursedByEmployee(ctx, employeeID)
}

func (f *fakeAdvanceRepo) UpdateStatus(_ context.Context, id string, status advance.Status, actorID string, rejectionReason *string) error {
	a, ok := f.advances[id]
	if !ok {
		return advance.ErrAdvanceNotFound
	}
	a.Status = status
	if status == advance.StatusApproved {
		now := time.Now()
		a.ApprovedAt = &now
		a.ApprovedBy = &actorID
	}
	if status == advance.StatusRejected {
		a.RejectionReason = rejectionReason
	}
	return nil
}

func (f *fakeAdvanceRepo) Disburse(_ context.Context, id string) error {
	a, ok := f.advances[id]
	if !ok {
		return advance.ErrAdvanceNotFound
	}
	a.Status = advance.StatusDisbursed
	a.RemainingBalance = a.Amount
	now := time.Now()
	a.DisbursedAt = &now
	return nil
}

func (f *fakeAdvanceRepo) DecrementBalance(_ context.Context, id string, amount decimal.Decimal) (decimal.Decimal, error) {
	a, ok := f.advances[id]
	if !ok {
		return decimal.Zero, advance.ErrAdvanceNotFound
	}
	if a.RemainingBalance.LessThan(amount) {
		return decimal.Zero, advance.ErrNegativeBalance
	}
	a.RemainingBalance = a.RemainingBalance.Sub(amount)
	return a.RemainingBalance, nil
}

func (f *fakeAdvanceRepo) MarkFullyPaid(_ context.Context, id string) error {
	a, ok := f.advances[id]
	if !ok {
		return advance.ErrAdvanceNotFound
	}
	a.Status = advance.StatusFullyPaid
	now := time.Now()
	a.CompletedAt = &now
	return nil
}

func (f *fakeAdvanceRepo) InsertDeduction(_ context.Context, d advance.AdvanceDeduction) (advance.AdvanceDeduction, error) {
	d.ID = fmt.Sprintf("ded-%d", len(f.deductions)+1)
	d.DeductedAt = time.Now()
	f.deductions = append(f.deductions, d)
	return d, nil
}

func (f *fakeAdvanceRepo) ListDeductionsByAdvance(_ context.Context, advanceID string) ([]advance.AdvanceDeduction, error) {
	var out []advance.AdvanceDeduction
	for _, d := range f.deductions {
		if d.AdvanceID == advanceID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetPayable(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.Payable() {
			out = append(out, e)
		}
	}
	return out, nil
}

func newTestService() (advance.AdvanceService, *fakeAdvanceRepo) {
	repo := newFakeAdvanceRepo()
	monthly := decimal.NewFromInt(30000)
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID:               "emp-1",
			EmployeeCode:     "E-001",
			FullName:         "Maria Santos",
			EmploymentStatus: employee.EmploymentStatusActive,
			RateBasis:        employee.RateBasisMonthly,
			MonthlyRate:      &monthly,
		},
		"emp-2": {
			ID:               "emp-2",
			EmployeeCode:     "E-002",
			FullName:         "Jose Reyes",
			EmploymentStatus: employee.EmploymentStatusResigned,
			RateBasis:        employee.RateBasisMonthly,
			MonthlyRate:      &monthly,
		},
	}}
	return NewAdvanceService(nil, repo, employees), repo
}

func requestDisbursed(t *testing.T, svc advance.AdvanceService, amount, perCutoff int64) string {
	t.Helper()
	ctx := context.Background()

	created, err := svc.RequestAdvance(ctx, advance.RequestAdvanceRequest{
		EmployeeID:         "emp-1",
		Amount:             decimal.NewFromInt(amount),
		DeductionPerCutoff: decimal.NewFromInt(perCutoff),
	})
	require.NoError(t, err)
	require.NoError(t, svc.ApproveAdvance(ctx, created.ID, "hr-1"))
	require.NoError(t, svc.DisburseAdvance(ctx, created.ID))
	return created.ID
}

// ===== REQUEST VALIDATION =====

func TestAdvanceService_RequestAdvance_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  advance.RequestAdvanceRequest
	}{
		{
			name: "zero amount",
			req: advance.RequestAdvanceRequest{
				EmployeeID:         "emp-1",
				Amount:             decimal.Zero,
				DeductionPerCutoff: decimal.NewFromInt(500),
			},
		},
		{
			name: "negative amount",
			req: advance.RequestAdvanceRequest{
				EmployeeID:         "emp-1",
				Amount:             decimal.NewFromInt(-1000),
				DeductionPerCutoff: decimal.NewFromInt(500),
			},
		},
		{
			name: "missing employee",
			req: advance.RequestAdvanceRequest{
				Amount:             decimal.NewFromInt(1000),
				DeductionPerCutoff: decimal.NewFromInt(500),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RequestAdvance(ctx, tt.req)
			assert.Error(t, err)
		})
	}
}

func TestAdvanceService_RequestAdvance_DeductionExceedsAmount(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.RequestAdvance(context.Background(), advance.RequestAdvanceRequest{
		EmployeeID:         "emp-1",
		Amount:             decimal.NewFromInt(1000),
		DeductionPerCutoff: decimal.NewFromInt(2000),
	})
	assert.ErrorIs(t, err, advance.ErrDeductionExceedsAmount)
}

func TestAdvanceService_RequestAdvance_NotPayableEmployee(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.RequestAdvance(context.Background(), advance.RequestAdvanceRequest{
		EmployeeID:         "emp-2",
		Amount:             decimal.NewFromInt(1000),
		DeductionPerCutoff: decimal.NewFromInt(500),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotPayable)
}

// ===== STATUS TRANSITIONS =====

func TestAdvanceService_StatusTransitions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.RequestAdvance(ctx, advance.RequestAdvanceRequest{
		EmployeeID:         "emp-1",
		Amount:             decimal.NewFromInt(5000),
		DeductionPerCutoff: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)

	// Cannot disburse straight from pending.
	err = svc.DisburseAdvance(ctx, created.ID)
	assert.ErrorIs(t, err, advance.ErrInvalidStatusTransition)

	require.NoError(t, svc.ApproveAdvance(ctx, created.ID, "hr-1"))

	// Approving twice is an illegal transition.
	err = svc.ApproveAdvance(ctx, created.ID, "hr-1")
	assert.ErrorIs(t, err, advance.ErrInvalidStatusTransition)

	require.NoError(t, svc.DisburseAdvance(ctx, created.ID))

	// Disbursed advances cannot be rejected, the money is already out.
	err = svc.RejectAdvance(ctx, created.ID, "hr-1", advance.RejectAdvanceRequest{Reason: "too late"})
	assert.ErrorIs(t, err, advance.ErrInvalidStatusTransition)

	got, err := svc.GetAdvance(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "disbursed", got.Status)
	assert.True(t, decimal.NewFromInt(5000).Equal(got.RemainingBalance), "disbursement seeds the balance from the amount")
}

func TestAdvanceService_RejectAdvance_RequiresReason(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.RequestAdvance(ctx, advance.RequestAdvanceRequest{
		EmployeeID:         "emp-1",
		Amount:             decimal.NewFromInt(5000),
		DeductionPerCutoff: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	err = svc.RejectAdvance(ctx, created.ID, "hr-1", advance.RejectAdvanceRequest{})
	assert.ErrorIs(t, err, advance.ErrRejectionReasonRequired)

	require.NoError(t, svc.RejectAdvance(ctx, created.ID, "hr-1", advance.RejectAdvanceRequest{Reason: "insufficient tenure"}))

	got, err := svc.GetAdvance(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "rejected", got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, "insufficient tenure", *got.RejectionReason)
}

// ===== DEDUCTION LEDGER =====

func TestAdvanceService_ApplyDeductions_FullRepaymentCycle(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	// 5,000 repaid at 1,000 per cutoff: five even deductions.
	id := requestDisbursed(t, svc, 5000, 1000)

	for i := 1; i <= 5; i++ {
		total, err := svc.ApplyDeductions(ctx, "emp-1", fmt.Sprintf("rec-%d", i))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1000).Equal(total), "cutoff %d", i)
	}

	got, err := svc.GetAdvance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "fully_paid", got.Status)
	assert.True(t, got.RemainingBalance.IsZero())
	assert.NotNil(t, got.CompletedAt)

	deductions, err := repo.ListDeductionsByAdvance(ctx, id)
	require.NoError(t, err)
	assert.Len(t, deductions, 5)
}

func TestAdvanceService_ApplyDeductions_FinalPartialDeduction(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// 800 at 300 per cutoff: 300, 300, then a final 200.
	id := requestDisbursed(t, svc, 800, 300)

	expected := []int64{300, 300, 200}
	for i, want := range expected {
		total, err := svc.ApplyDeductions(ctx, "emp-1", fmt.Sprintf("rec-%d", i+1))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(want).Equal(total), "cutoff %d: want %d got %s", i+1, want, total)
	}

	got, err := svc.GetAdvance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "fully_paid", got.Status)
	assert.True(t, got.RemainingBalance.IsZero())
}

func TestAdvanceService_ApplyDeductions_NoOpAfterFullyPaid(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	id := requestDisbursed(t, svc, 600, 600)

	total, err := svc.ApplyDeductions(ctx, "emp-1", "rec-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(600).Equal(total))

	// Fully paid advances no longer appear in the disbursed set.
	total, err = svc.ApplyDeductions(ctx, "emp-1", "rec-2")
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	deductions, err := repo.ListDeductionsByAdvance(ctx, id)
	require.NoError(t, err)
	assert.Len(t, deductions, 1, "a no-op cutoff writes no audit row")
}

// inconsistentListRepo leaks a non-disbursed row from the locked-list
// query, simulating a corrupted ledger read.
type inconsistentListRepo struct {
	*fakeAdvanceRepo
}

func (r *inconsistentListRepo) ListDisbursedByEmployeeForUpdate(_ context.Context, _ string) ([]advance.SalaryAdvance, error) {
	return []advance.SalaryAdvance{{
		ID:                 "adv-odd",
		EmployeeID:         "emp-1",
		Amount:             decimal.NewFromInt(1000),
		DeductionPerCutoff: decimal.NewFromInt(500),
		RemainingBalance:   decimal.NewFromInt(1000),
		Status:             advance.StatusPending,
	}}, nil
}

func TestAdvanceService_ApplyDeductions_AbortsOnUndisbursedRow(t *testing.T) {
	repo := &inconsistentListRepo{newFakeAdvanceRepo()}
	monthly := decimal.NewFromInt(30000)
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID:               "emp-1",
			EmployeeCode:     "E-001",
			FullName:         "Maria Santos",
			EmploymentStatus: employee.EmploymentStatusActive,
			RateBasis:        employee.RateBasisMonthly,
			MonthlyRate:      &monthly,
		},
	}}
	svc := NewAdvanceService(nil, repo, employees)

	total, err := svc.ApplyDeductions(context.Background(), "emp-1", "rec-1")
	assert.ErrorIs(t, err, advance.ErrAdvanceNotDisbursed)
	assert.True(t, total.IsZero())
	assert.Empty(t, repo.deductions, "an aborted run writes no audit rows")
}

func TestAdvanceService_ApplyDeductions_ConservationAcrossAdvances(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	// Two concurrent advances for the same employee.
	idA := requestDisbursed(t, svc, 2500, 1000)
	idB := requestDisbursed(t, svc, 700, 400)

	for i := 1; i <= 4; i++ {
		_, err := svc.ApplyDeductions(ctx, "emp-1", fmt.Sprintf("rec-%d", i))
		require.NoError(t, err)
	}

	// sum(deductions) + remaining_balance == amount, for each advance.
	for _, tc := range []struct {
		id     string
		amount int64
	}{
		{idA, 2500},
		{idB, 700},
	} {
		got, err := svc.GetAdvance(ctx, tc.id)
		require.NoError(t, err)

		deductions, err := repo.ListDeductionsByAdvance(ctx, tc.id)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, d := range deductions {
			sum = sum.Add(d.Amount)
		}
		assert.True(t, decimal.NewFromInt(tc.amount).Equal(sum.Add(got.RemainingBalance)),
			"advance %s: deducted %s remaining %s", tc.id, sum, got.RemainingBalance)
	}
}

func TestAdvanceService_PlanDeductions_DoesNotMutate(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	id := requestDisbursed(t, svc, 5000, 1000)

	planned, err := svc.PlanDeductions(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(planned))

	got, err := svc.GetAdvance(ctx, id)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5000).Equal(got.RemainingBalance))
	assert.Empty(t, repo.deductions)
}

func TestAdvanceService_PlanDeductions_PendingAdvanceContributesNothing(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RequestAdvance(ctx, advance.RequestAdvanceRequest{
		EmployeeID:         "emp-1",
		Amount:             decimal.NewFromInt(5000),
		DeductionPerCutoff: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	planned, err := svc.PlanDeductions(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, planned.IsZero())
}

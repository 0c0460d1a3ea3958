package advance

import (
	"context"
	"fmt"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/domain/advance"
	"github.com/bayanihr/payroll-backend-go/internal/domain/employee"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AdvanceServiceImpl struct {
	db *database.DB
	advance.AdvanceRepository
	employee.EmployeeRepository
}

func NewAdvanceService(
	db *database.DB,
	advanceRepo advance.AdvanceRepository,
	employeeRepo employee.EmployeeRepository,
) advance.AdvanceService {
	return &AdvanceServiceImpl{
		db:                 db,
		AdvanceRepository:  advanceRepo,
		EmployeeRepository: employeeRepo,
	}
}

// RequestAdvance implements advance.AdvanceService.
func (s *AdvanceServiceImpl) RequestAdvance(ctx context.Context, req advance.RequestAdvanceRequest) (advance.SalaryAdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.SalaryAdvanceResponse{}, err
	}
	if req.DeductionPerCutoff.GreaterThan(req.Amount) {
		return advance.SalaryAdvanceResponse{}, advance.ErrDeductionExceedsAmount
	}

	// The requester must be a real, payable employee.
	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return advance.SalaryAdvanceResponse{}, err
	}
	if !emp.Payable() {
		return advance.SalaryAdvanceResponse{}, employee.ErrEmployeeNotPayable
	}

	created, err := s.AdvanceRepository.Create(ctx, advance.SalaryAdvance{
		EmployeeID:         req.EmployeeID,
		Amount:             req.Amount,
		DeductionPerCutoff: req.DeductionPerCutoff,
		RemainingBalance:   decimal.Zero,
		Status:             advance.StatusPending,
		Purpose:            req.Purpose,
	})
	if err != nil {
		return advance.SalaryAdvanceResponse{}, fmt.Errorf("failed to create salary advance: %w", err)
	}

	return toAdvanceResponse(created), nil
}

// ApproveAdvance implements advance.AdvanceService.
func (s *AdvanceServiceImpl) ApproveAdvance(ctx context.Context, advanceID string, actorID string) error {
	a, err := s.AdvanceRepository.GetByID(ctx, advanceID)
	if err != nil {
		return err
	}
	if !a.Status.CanTransitionTo(advance.StatusApproved) {
		return advance.ErrInvalidStatusTransition
	}

	if err := s.AdvanceRepository.UpdateStatus(ctx, advanceID, advance.StatusApproved, actorID, nil); err != nil {
		return fmt.Errorf("failed to approve salary advance: %w", err)
	}
	return nil
}

// RejectAdvance implements advance.AdvanceService. Both pending and approved
// advances can be rejected; disbursed ones cannot, the money is already out.
func (s *AdvanceServiceImpl) RejectAdvance(ctx context.Context, advanceID string, actorID string, req advance.RejectAdvanceRequest) error {
	if validator.IsEmpty(req.Reason) {
		return advance.ErrRejectionReasonRequired
	}

	a, err := s.AdvanceRepository.GetByID(ctx, advanceID)
	if err != nil {
		return err
	}
	if !a.Status.CanTransitionTo(advance.StatusRejected) {
		return advance.ErrInvalidStatusTransition
	}

	if err := s.AdvanceRepository.UpdateStatus(ctx, advanceID, advance.StatusRejected, actorID, &req.Reason); err != nil {
		return fmt.Errorf("failed to reject salary advance: %w", err)
	}
	return nil
}

// DisburseAdvance implements advance.AdvanceService. Disbursement seeds the
// remaining balance from the approved amount exactly once.
func (s *AdvanceServiceImpl) DisburseAdvance(ctx context.Context, advanceID string) error {
	a, err := s.AdvanceRepository.GetByID(ctx, advanceID)
	if err != nil {
		return err
	}
	if !a.Status.CanTransitionTo(advance.StatusDisbursed) {
		return advance.ErrInvalidStatusTransition
	}

	if err := s.AdvanceRepository.Disburse(ctx, advanceID); err != nil {
		return fmt.Errorf("failed to disburse salary advance: %w", err)
	}
	return nil
}

// GetAdvance implements advance.AdvanceService.
func (s *AdvanceServiceImpl) GetAdvance(ctx context.Context, advanceID string) (advance.SalaryAdvanceResponse, error) {
	a, err := s.AdvanceRepository.GetByID(ctx, advanceID)
	if err != nil {
		return advance.SalaryAdvanceResponse{}, err
	}
	return toAdvanceResponse(a), nil
}

// ListAdvancesByEmployee implements advance.AdvanceService.
func (s *AdvanceServiceImpl) ListAdvancesByEmployee(ctx context.Context, employeeID string) ([]advance.SalaryAdvanceResponse, error) {
	advances, err := s.AdvanceRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary advances: %w", err)
	}

	responses := make([]advance.SalaryAdvanceResponse, 0, len(advances))
	for _, a := range advances {
		responses = append(responses, toAdvanceResponse(a))
	}
	return responses, nil
}

// ListDeductions implements advance.AdvanceService.
func (s *AdvanceServiceImpl) ListDeductions(ctx context.Context, advanceID string) ([]advance.AdvanceDeductionResponse, error) {
	if _, err := s.AdvanceRepository.GetByID(ctx, advanceID); err != nil {
		return nil, err
	}

	deductions, err := s.AdvanceRepository.ListDeductionsByAdvance(ctx, advanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list advance deductions: %w", err)
	}

	responses := make([]advance.AdvanceDeductionResponse, 0, len(deductions))
	for _, d := range deductions {
		responses = append(responses, advance.AdvanceDeductionResponse{
			ID:              d.ID,
			AdvanceID:       d.AdvanceID,
			PayrollRecordID: d.PayrollRecordID,
			Amount:          d.Amount,
			DeductedAt:      d.DeductedAt.Format(time.RFC3339),
		})
	}
	return responses, nil
}

// PlanDeductions implements advance.AdvanceService.
func (s *AdvanceServiceImpl) PlanDeductions(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	advances, err := s.AdvanceRepository.ListDisbursedByEmployee(ctx, employeeID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list disbursed advances: %w", err)
	}

	total := decimal.Zero
	for _, a := range advances {
		total = total.Add(a.PlannedDeduction())
	}
	return total, nil
}

// ApplyDeductions implements advance.AdvanceService.
//
// The rows come back under FOR UPDATE, so two concurrent payroll approvals
// for the same employee serialize here and never decrement a stale balance.
// Any failure aborts the caller's transaction, which rolls back every
// decrement and audit row together.
func (s *AdvanceServiceImpl) ApplyDeductions(ctx context.Context, employeeID string, payrollRecordID string) (decimal.Decimal, error) {
	advances, err := s.AdvanceRepository.ListDisbursedByEmployeeForUpdate(ctx, employeeID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to lock disbursed advances: %w", err)
	}

	total := decimal.Zero
	for _, a := range advances {
		// The locked query only returns disbursed rows; anything else here
		// means the ledger is inconsistent and the transaction must abort.
		if a.Status != advance.StatusDisbursed {
			return decimal.Zero, fmt.Errorf("advance %s: %w", a.ID, advance.ErrAdvanceNotDisbursed)
		}

		amount := a.PlannedDeduction()
		if !amount.IsPositive() {
			// A zero planned deduction is a silent no-op: no audit row,
			// no balance change.
			continue
		}

		newBalance, err := s.AdvanceRepository.DecrementBalance(ctx, a.ID, amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to decrement advance %s: %w", a.ID, err)
		}

		if _, err := s.AdvanceRepository.InsertDeduction(ctx, advance.AdvanceDeduction{
			AdvanceID:       a.ID,
			PayrollRecordID: payrollRecordID,
			Amount:          amount,
		}); err != nil {
			return decimal.Zero, fmt.Errorf("failed to record advance deduction: %w", err)
		}

		if newBalance.IsZero() {
			if err := s.AdvanceRepository.MarkFullyPaid(ctx, a.ID); err != nil {
				return decimal.Zero, fmt.Errorf("failed to mark advance %s fully paid: %w", a.ID, err)
			}
		}

		total = total.Add(amount)
	}
	return total, nil
}

func toAdvanceResponse(a advance.SalaryAdvance) advance.SalaryAdvanceResponse {
	resp := advance.SalaryAdvanceResponse{
		ID:                 a.ID,
		EmployeeID:         a.EmployeeID,
		Amount:             a.Amount,
		DeductionPerCutoff: a.DeductionPerCutoff,
		RemainingBalance:   a.RemainingBalance,
		Status:             string(a.Status),
		Purpose:            a.Purpose,
		RejectionReason:    a.RejectionReason,
		RequestedAt:        a.RequestedAt.Format(time.RFC3339),
	}
	if a.DisbursedAt != nil {
		formatted := a.DisbursedAt.Format(time.RFC3339)
		resp.DisbursedAt = &formatted
	}
	if a.CompletedAt != nil {
		formatted := a.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &formatted
	}
	return resp
}

package discipline

import (
	"github.com/bayanihr/payroll-backend-go/internal/pkg/validator"
)

type IssueNoticeRequest struct {
	EmployeeID string `json:"employee_id"`
	Violation  string `json:"violation"`
}

func (r *IssueNoticeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Violation) {
		errs = append(errs, validator.ValidationError{Field: "violation", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitExplanationRequest struct {
	Text string `json:"text"`
}

func (r *SubmitExplanationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Text) {
		errs = append(errs, validator.ValidationError{Field: "text", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ResolveNoticeRequest struct {
	Sanction string  `json:"sanction"`
	Notes    *string `json:"notes,omitempty"`
}

type NoticeResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	Violation        string  `json:"violation"`
	IssuedAt         string  `json:"issued_at"`
	ResponseDeadline string  `json:"response_deadline"`
	Status           string  `json:"status"`
	Sanction         *string `json:"sanction,omitempty"`
	ResolutionNotes  *string `json:"resolution_notes,omitempty"`
	ResolvedAt       *string `json:"resolved_at,omitempty"`
}

type ExplanationResponse struct {
	ID          string `json:"id"`
	NoticeID    string `json:"notice_id"`
	Text        string `json:"text"`
	SubmittedAt string `json:"submitted_at"`
	IsLate      bool   `json:"is_late"`
}

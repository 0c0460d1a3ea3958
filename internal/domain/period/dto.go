package period

import (
	"github.com/bayanihr/payroll-backend-go/internal/pkg/validator"
)

type CreatePayPeriodRequest struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	CutoffKind string `json:"cutoff_kind"`
}

func (r *CreatePayPeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if !CutoffKind(r.CutoffKind).Valid() {
		errs = append(errs, validator.ValidationError{Field: "cutoff_kind", Message: "must be 'semi_monthly' or 'monthly'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayPeriodResponse struct {
	ID         string `json:"id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	CutoffKind string `json:"cutoff_kind"`
	Status     string `json:"status"`
}

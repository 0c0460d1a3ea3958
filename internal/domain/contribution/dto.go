package contribution

import (
	"github.com/bayanihr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// CreateScheduleRequest seeds a new schedule version from the built-in
// statutory defaults, effective from the given date. Bracket-level edits
// happen out of band; versioning by effective date is the API's concern.
type CreateScheduleRequest struct {
	EffectiveDate string `json:"effective_date"`
}

func (r *CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScheduleResponse struct {
	ID            string `json:"id"`
	EffectiveDate string `json:"effective_date"`
	IsActive      bool   `json:"is_active"`

	SSSBracketCount    int             `json:"sss_bracket_count"`
	SSSEmployeeRate    decimal.Decimal `json:"sss_employee_rate"`
	SSSMonthlyShareCap decimal.Decimal `json:"sss_monthly_share_cap"`

	PhilHealthFloor           decimal.Decimal `json:"philhealth_floor"`
	PhilHealthCeiling         decimal.Decimal `json:"philhealth_ceiling"`
	PhilHealthPremiumRate     decimal.Decimal `json:"philhealth_premium_rate"`
	PhilHealthMonthlyShareCap decimal.Decimal `json:"philhealth_monthly_share_cap"`

	PagIBIGThreshold      decimal.Decimal `json:"pagibig_threshold"`
	PagIBIGMaxCredit      decimal.Decimal `json:"pagibig_max_credit"`
	PagIBIGMonthlyCeiling decimal.Decimal `json:"pagibig_monthly_ceiling"`

	TaxBracketCount int `json:"tax_bracket_count"`
}

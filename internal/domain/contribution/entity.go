package contribution

import (
	"time"

	"github.com/shopspring/decimal"
)

// SSSBracket - one row of the SSS salary-credit schedule.
// Upper is nil for the open-ended top bracket.
type SSSBracket struct {
	Lower        decimal.Decimal
	Upper        *decimal.Decimal
	SalaryCredit decimal.Decimal
}

// TaxBracket - one row of the annual progressive withholding schedule.
// Brackets are contiguous; selection picks the highest Lower <= income.
type TaxBracket struct {
	Lower   decimal.Decimal
	BaseTax decimal.Decimal
	Rate    decimal.Decimal
}

// Schedule - immutable snapshot of every statutory table in force at a
// given effective date. Loaded once per payroll run; never mutated.
type Schedule struct {
	ID            string
	EffectiveDate time.Time
	IsActive      bool

	// Social insurance (SSS). The share cap is the monthly employee share
	// ceiling; the calculator splits it across the period's cutoffs.
	SSSBrackets        []SSSBracket
	SSSEmployeeRate    decimal.Decimal
	SSSMonthlyShareCap decimal.Decimal

	// Health insurance (PhilHealth)
	PhilHealthFloor           decimal.Decimal
	PhilHealthCeiling         decimal.Decimal
	PhilHealthPremiumRate     decimal.Decimal
	PhilHealthMonthlyShareCap decimal.Decimal

	// Housing fund (Pag-IBIG). The monthly ceiling caps the employee share.
	PagIBIGThreshold      decimal.Decimal
	PagIBIGRateLow        decimal.Decimal
	PagIBIGRateHigh       decimal.Decimal
	PagIBIGMaxCredit      decimal.Decimal
	PagIBIGMonthlyCeiling decimal.Decimal

	// Withholding tax
	TaxBrackets []TaxBracket

	CreatedAt time.Time
}

// SSSCreditFor looks up the salary credit for a monthly salary. Salaries
// below the lowest bracket use the lowest credit; salaries above the
// highest bracket use the highest credit. Lookup never fails.
func (s *Schedule) SSSCreditFor(monthlySalary decimal.Decimal) decimal.Decimal {
	if len(s.SSSBrackets) == 0 {
		return decimal.Zero
	}

	first := s.SSSBrackets[0]
	if monthlySalary.LessThan(first.Lower) {
		return first.SalaryCredit
	}

	for _, b := range s.SSSBrackets {
		if monthlySalary.GreaterThanOrEqual(b.Lower) {
			if b.Upper == nil || monthlySalary.LessThanOrEqual(*b.Upper) {
				return b.SalaryCredit
			}
			continue
		}
	}

	// Above every bounded bracket: clamp to the top credit.
	return s.SSSBrackets[len(s.SSSBrackets)-1].SalaryCredit
}

// TaxBracketFor returns the highest bracket whose lower bound does not
// exceed the annual income. Bracket 0 covers income from zero, so the
// lookup never fails for non-negative input.
func (s *Schedule) TaxBracketFor(annualIncome decimal.Decimal) TaxBracket {
	selected := s.TaxBrackets[0]
	for _, b := range s.TaxBrackets {
		if annualIncome.GreaterThanOrEqual(b.Lower) {
			selected = b
		} else {
			break
		}
	}
	return selected
}

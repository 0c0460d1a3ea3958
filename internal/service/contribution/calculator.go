package contribution

import (
	"github.com/bayanihr/payroll-backend-go/internal/domain/contribution"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Calculator computes per-cutoff employee shares for the three statutory
// schemes and the withholding tax, against one immutable schedule snapshot.
// All methods are pure. The legal tables are defined additively at the
// monthly level, so every multiplication is rounded to two decimals before
// the next step; rounding only at the end drifts at the cent level.
// cutoffsPerMonth splits the monthly figure across the period's cutoffs:
// 2 for semi-monthly, 1 for monthly.
type Calculator struct {
	schedule *contribution.Schedule
}

func NewCalculator(schedule *contribution.Schedule) *Calculator {
	return &Calculator{schedule: schedule}
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func perCutoff(monthly decimal.Decimal, cutoffsPerMonth int64) decimal.Decimal {
	return round2(monthly.Div(decimal.NewFromInt(cutoffsPerMonth)))
}

// SSSEmployeeShare maps a monthly salary to the per-cutoff SSS deduction:
// bracketed salary credit times the employee rate, clamped to the monthly
// share cap, split across the month's cutoffs. Salaries outside the bracket
// table clamp to the nearest bracket, they never error.
func (c *Calculator) SSSEmployeeShare(monthlySalary decimal.Decimal, cutoffsPerMonth int64) (decimal.Decimal, error) {
	if monthlySalary.IsNegative() {
		return decimal.Zero, contribution.ErrNegativeSalary
	}

	credit := c.schedule.SSSCreditFor(monthlySalary)
	monthly := round2(credit.Mul(c.schedule.SSSEmployeeRate))
	if monthly.GreaterThan(c.schedule.SSSMonthlyShareCap) {
		monthly = c.schedule.SSSMonthlyShareCap
	}
	return perCutoff(monthly, cutoffsPerMonth), nil
}

// PhilHealthEmployeeShare clamps the salary into [floor, ceiling], applies
// the premium rate, takes the employee half, and splits it across the
// month's cutoffs.
func (c *Calculator) PhilHealthEmployeeShare(monthlySalary decimal.Decimal, cutoffsPerMonth int64) (decimal.Decimal, error) {
	if monthlySalary.IsNegative() {
		return decimal.Zero, contribution.ErrNegativeSalary
	}

	clamped := monthlySalary
	if clamped.LessThan(c.schedule.PhilHealthFloor) {
		clamped = c.schedule.PhilHealthFloor
	}
	if clamped.GreaterThan(c.schedule.PhilHealthCeiling) {
		clamped = c.schedule.PhilHealthCeiling
	}

	premium := round2(clamped.Mul(c.schedule.PhilHealthPremiumRate))
	monthly := round2(premium.Div(two))
	if monthly.GreaterThan(c.schedule.PhilHealthMonthlyShareCap) {
		monthly = c.schedule.PhilHealthMonthlyShareCap
	}
	return perCutoff(monthly, cutoffsPerMonth), nil
}

// PagIBIGEmployeeShare caps the salary at the fund's maximum credit, picks
// the tier rate by the threshold, clamps the monthly figure to the fund
// ceiling, and splits it across the month's cutoffs.
func (c *Calculator) PagIBIGEmployeeShare(monthlySalary decimal.Decimal, cutoffsPerMonth int64) (decimal.Decimal, error) {
	if monthlySalary.IsNegative() {
		return decimal.Zero, contribution.ErrNegativeSalary
	}

	base := monthlySalary
	if base.GreaterThan(c.schedule.PagIBIGMaxCredit) {
		base = c.schedule.PagIBIGMaxCredit
	}

	rate := c.schedule.PagIBIGRateHigh
	if monthlySalary.LessThanOrEqual(c.schedule.PagIBIGThreshold) {
		rate = c.schedule.PagIBIGRateLow
	}

	monthly := round2(base.Mul(rate))
	if monthly.GreaterThan(c.schedule.PagIBIGMonthlyCeiling) {
		monthly = c.schedule.PagIBIGMonthlyCeiling
	}
	return perCutoff(monthly, cutoffsPerMonth), nil
}

// WithholdingTax annualizes the per-cutoff taxable income, applies the
// progressive schedule, and scales back down. The zero-rate bracket
// short-circuits to exactly zero so no rounding artifact ever surfaces.
func (c *Calculator) WithholdingTax(perCutoffTaxable decimal.Decimal, cutoffsPerYear int64) (decimal.Decimal, error) {
	if perCutoffTaxable.IsNegative() {
		return decimal.Zero, contribution.ErrNegativeTaxable
	}

	n := decimal.NewFromInt(cutoffsPerYear)
	annual := round2(perCutoffTaxable.Mul(n))

	bracket := c.schedule.TaxBracketFor(annual)
	if bracket.Rate.IsZero() {
		return decimal.Zero, nil
	}

	marginal := round2(annual.Sub(bracket.Lower).Mul(bracket.Rate))
	annualTax := bracket.BaseTax.Add(marginal)

	return round2(annualTax.Div(n)), nil
}

package contribution

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSchedule returns the statutory tables in force since January 2024.
// Used to seed the contribution_schedules table and as the fallback when no
// active row exists yet.
func DefaultSchedule() *Schedule {
	return &Schedule{
		EffectiveDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,

		SSSBrackets:        defaultSSSBrackets(),
		SSSEmployeeRate:    decimal.NewFromFloat(0.045),
		SSSMonthlyShareCap: decimal.NewFromInt(1350),

		PhilHealthFloor:           decimal.NewFromInt(10000),
		PhilHealthCeiling:         decimal.NewFromInt(100000),
		PhilHealthPremiumRate:     decimal.NewFromFloat(0.05),
		PhilHealthMonthlyShareCap: decimal.NewFromInt(2500),

		PagIBIGThreshold:      decimal.NewFromInt(1500),
		PagIBIGRateLow:        decimal.NewFromFloat(0.01),
		PagIBIGRateHigh:       decimal.NewFromFloat(0.02),
		PagIBIGMaxCredit:      decimal.NewFromInt(10000),
		PagIBIGMonthlyCeiling: decimal.NewFromInt(200),

		TaxBrackets: defaultTaxBrackets(),
	}
}

// defaultSSSBrackets builds the 2024 salary-credit schedule: monthly
// salary credits from 4,000 to 30,000 in 500-peso steps. Each bracket
// spans credit-250 to credit+249.99, except the first (open below) and
// the last (open above).
func defaultSSSBrackets() []SSSBracket {
	const steps = 53 // 4,000 .. 30,000 inclusive

	cent := decimal.NewFromFloat(0.01)
	step := decimal.NewFromInt(500)
	half := decimal.NewFromInt(250)

	brackets := make([]SSSBracket, 0, steps)
	credit := decimal.NewFromInt(4000)
	for i := 0; i < steps; i++ {
		b := SSSBracket{SalaryCredit: credit}
		if i == 0 {
			b.Lower = decimal.Zero
		} else {
			b.Lower = credit.Sub(half)
		}
		if i < steps-1 {
			upper := credit.Add(half).Sub(cent)
			b.Upper = &upper
		}
		brackets = append(brackets, b)
		credit = credit.Add(step)
	}
	return brackets
}

// defaultTaxBrackets is the TRAIN-law annual schedule effective 2023.
func defaultTaxBrackets() []TaxBracket {
	return []TaxBracket{
		{Lower: decimal.Zero, BaseTax: decimal.Zero, Rate: decimal.Zero},
		{Lower: decimal.NewFromInt(250000), BaseTax: decimal.Zero, Rate: decimal.NewFromFloat(0.15)},
		{Lower: decimal.NewFromInt(400000), BaseTax: decimal.NewFromInt(22500), Rate: decimal.NewFromFloat(0.20)},
		{Lower: decimal.NewFromInt(800000), BaseTax: decimal.NewFromInt(102500), Rate: decimal.NewFromFloat(0.25)},
		{Lower: decimal.NewFromInt(2000000), BaseTax: decimal.NewFromInt(402500), Rate: decimal.NewFromFloat(0.30)},
		{Lower: decimal.NewFromInt(8000000), BaseTax: decimal.NewFromInt(2202500), Rate: decimal.NewFromFloat(0.35)},
	}
}

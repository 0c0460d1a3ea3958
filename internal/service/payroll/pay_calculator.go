package payroll

import (
	"github.com/bayanihr/payroll-backend-go/internal/domain/employee"
	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Standard divisors for deriving rates from the configured basis.
var (
	workingDaysPerMonth = decimal.NewFromInt(22)
	hoursPerDay         = decimal.NewFromInt(8)
	minutesPerHour      = decimal.NewFromInt(60)
)

// Overtime pay multipliers by recorded type. Minutes of different types
// are converted separately and summed; they are never pooled under one
// multiplier.
var overtimeMultipliers = map[payroll.OvertimeType]decimal.Decimal{
	payroll.OvertimeOrdinary: decimal.NewFromFloat(1.25),
	payroll.OvertimeRestDay:  decimal.NewFromFloat(1.30),
	payroll.OvertimeHoliday:  decimal.NewFromFloat(2.00),
}

// RateSnapshot holds the daily and hourly rates captured at computation
// time. A record keeps its snapshot forever; rates are never re-derived
// after creation.
type RateSnapshot struct {
	DailyRate  decimal.Decimal
	HourlyRate decimal.Decimal
}

// NewRateSnapshot derives the snapshot from the employee's rate basis:
// monthly-basis employees earn monthly/22 per day, and every employee's
// hourly rate is daily/8. Returns ok=false when no usable rate is
// configured; such employees are skipped, not errored.
func NewRateSnapshot(emp employee.Employee) (RateSnapshot, bool) {
	if !emp.HasRate() {
		return RateSnapshot{}, false
	}

	var daily decimal.Decimal
	switch emp.RateBasis {
	case employee.RateBasisDaily:
		daily = *emp.DailyRate
	case employee.RateBasisMonthly:
		daily = emp.MonthlyRate.Div(workingDaysPerMonth).Round(2)
	}

	return RateSnapshot{
		DailyRate:  daily,
		HourlyRate: daily.Div(hoursPerDay).Round(2),
	}, true
}

// BasicPay pays the daily rate for each day worked net of unpaid leave.
// Unpaid leave can zero out the worked days but never drive them negative.
func (s RateSnapshot) BasicPay(daysWorked, unpaidLeaveDays decimal.Decimal) decimal.Decimal {
	payable := daysWorked.Sub(unpaidLeaveDays)
	if payable.IsNegative() {
		payable = decimal.Zero
	}
	return s.DailyRate.Mul(payable).Round(2)
}

// OvertimePay converts one overtime type's minutes to pay: hourly rate
// times the type multiplier times minutes/60.
func (s RateSnapshot) OvertimePay(otType payroll.OvertimeType, minutes int) decimal.Decimal {
	if minutes <= 0 {
		return decimal.Zero
	}
	hours := decimal.NewFromInt(int64(minutes)).Div(minutesPerHour).Round(2)
	return s.HourlyRate.Mul(overtimeMultipliers[otType]).Round(2).Mul(hours).Round(2)
}

// LatenessDeduction charges the per-minute rate for deductible late
// minutes. Grace-period filtering happens upstream in the attendance
// aggregate; the minutes received here are charged as-is.
func (s RateSnapshot) LatenessDeduction(deductibleLateMinutes int) decimal.Decimal {
	if deductibleLateMinutes <= 0 {
		return decimal.Zero
	}
	perMinute := s.HourlyRate.Div(minutesPerHour).Round(2)
	return perMinute.Mul(decimal.NewFromInt(int64(deductibleLateMinutes))).Round(2)
}

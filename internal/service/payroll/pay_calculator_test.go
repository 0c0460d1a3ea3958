package payroll

import (
	"testing"

	"github.com/bayanihr/payroll-backend-go/internal/domain/employee"
	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func monthlyEmployee(monthly string) employee.Employee {
	rate := dec(monthly)
	return employee.Employee{
		ID:               "emp-1",
		EmploymentStatus: employee.EmploymentStatusActive,
		RateBasis:        employee.RateBasisMonthly,
		MonthlyRate:      &rate,
	}
}

func dailyEmployee(daily string) employee.Employee {
	rate := dec(daily)
	return employee.Employee{
		ID:               "emp-2",
		EmploymentStatus: employee.EmploymentStatusActive,
		RateBasis:        employee.RateBasisDaily,
		DailyRate:        &rate,
	}
}

func TestNewRateSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("monthly basis divides by 22 then 8", func(t *testing.T) {
		snap, ok := NewRateSnapshot(monthlyEmployee("22000.00"))
		require.True(t, ok)
		assert.True(t, dec("1000.00").Equal(snap.DailyRate))
		assert.True(t, dec("125.00").Equal(snap.HourlyRate))
	})

	t.Run("daily basis uses the configured rate directly", func(t *testing.T) {
		snap, ok := NewRateSnapshot(dailyEmployee("800.00"))
		require.True(t, ok)
		assert.True(t, dec("800.00").Equal(snap.DailyRate))
		assert.True(t, dec("100.00").Equal(snap.HourlyRate))
	})

	t.Run("no rate configured is skipped not errored", func(t *testing.T) {
		emp := employee.Employee{RateBasis: employee.RateBasisMonthly}
		_, ok := NewRateSnapshot(emp)
		assert.False(t, ok)

		zero := decimal.Zero
		emp = employee.Employee{RateBasis: employee.RateBasisDaily, DailyRate: &zero}
		_, ok = NewRateSnapshot(emp)
		assert.False(t, ok)
	})
}

func TestBasicPay(t *testing.T) {
	t.Parallel()
	snap := RateSnapshot{DailyRate: dec("1000.00"), HourlyRate: dec("125.00")}

	tcs := []struct {
		name     string
		days     string
		unpaid   string
		expected string
	}{
		{"full cutoff", "11", "0", "11000.00"},
		{"unpaid leave reduces days", "11", "2", "9000.00"},
		{"half days pay half rates", "10.5", "0", "10500.00"},
		{"unpaid leave never drives days negative", "3", "5", "0.00"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := snap.BasicPay(dec(tc.days), dec(tc.unpaid))
			assert.True(t, dec(tc.expected).Equal(got), "want %s got %s", tc.expected, got)
		})
	}
}

func TestOvertimePay(t *testing.T) {
	t.Parallel()
	snap := RateSnapshot{DailyRate: dec("800.00"), HourlyRate: dec("100.00")}

	tcs := []struct {
		name     string
		otType   payroll.OvertimeType
		minutes  int
		expected string
	}{
		{"ordinary 1.25x", payroll.OvertimeOrdinary, 120, "250.00"},
		{"rest day 1.30x", payroll.OvertimeRestDay, 60, "130.00"},
		{"holiday 2.00x", payroll.OvertimeHoliday, 90, "300.00"},
		{"zero minutes", payroll.OvertimeOrdinary, 0, "0"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := snap.OvertimePay(tc.otType, tc.minutes)
			assert.True(t, dec(tc.expected).Equal(got), "want %s got %s", tc.expected, got)
		})
	}
}

// Minutes of different overtime types must each get their own multiplier;
// pooling them under one rate would misprice every mixed period.
func TestOvertimePay_TypesConvertedSeparately(t *testing.T) {
	t.Parallel()
	snap := RateSnapshot{DailyRate: dec("800.00"), HourlyRate: dec("100.00")}

	separate := snap.OvertimePay(payroll.OvertimeOrdinary, 60).
		Add(snap.OvertimePay(payroll.OvertimeHoliday, 60))
	pooled := snap.OvertimePay(payroll.OvertimeOrdinary, 120)

	assert.True(t, dec("325.00").Equal(separate))
	assert.False(t, separate.Equal(pooled))
}

func TestLatenessDeduction(t *testing.T) {
	t.Parallel()
	snap := RateSnapshot{DailyRate: dec("800.00"), HourlyRate: dec("100.00")}

	tcs := []struct {
		name     string
		minutes  int
		expected string
	}{
		{"charged per minute", 30, "50.10"}, // 100/60 rounds to 1.67
		{"zero minutes", 0, "0"},
		{"negative guard", -5, "0"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := snap.LatenessDeduction(tc.minutes)
			assert.True(t, dec(tc.expected).Equal(got), "want %s got %s", tc.expected, got)
		})
	}
}

package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                 string
	EmployeeCode       string
	FullName           string
	EmploymentStatus   EmploymentStatus
	RateBasis          RateBasis
	DailyRate          *decimal.Decimal
	MonthlyRate        *decimal.Decimal
	PerCutoffAllowance decimal.Decimal
	HireDate           time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive       EmploymentStatus = "active"
	EmploymentStatusProbationary EmploymentStatus = "probationary"
	EmploymentStatusResigned     EmploymentStatus = "resigned"
	EmploymentStatusTerminated   EmploymentStatus = "terminated"
)

type RateBasis string

const (
	RateBasisDaily   RateBasis = "daily"
	RateBasisMonthly RateBasis = "monthly"
)

// Payable reports whether the employee is in scope for payroll generation.
func (e Employee) Payable() bool {
	return e.EmploymentStatus == EmploymentStatusActive || e.EmploymentStatus == EmploymentStatusProbationary
}

// HasRate reports whether a usable pay rate is configured. Employees
// without one are skipped during generation, not errored.
func (e Employee) HasRate() bool {
	switch e.RateBasis {
	case RateBasisDaily:
		return e.DailyRate != nil && e.DailyRate.IsPositive()
	case RateBasisMonthly:
		return e.MonthlyRate != nil && e.MonthlyRate.IsPositive()
	}
	return false
}

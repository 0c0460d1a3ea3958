package contribution

import "errors"

var (
	ErrScheduleNotFound = errors.New("contribution schedule not found")
	ErrNegativeSalary   = errors.New("monthly salary must not be negative")
	ErrNegativeTaxable  = errors.New("taxable income must not be negative")
)

package period

import "errors"

var (
	ErrPayPeriodNotFound  = errors.New("pay period not found")
	ErrPayPeriodOverlaps  = errors.New("pay period overlaps an existing period of the same cutoff kind")
	ErrPayPeriodClosed    = errors.New("pay period is closed")
	ErrPayPeriodNotClosed = errors.New("pay period has unreleased payroll records")
)

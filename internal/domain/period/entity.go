package period

import "time"

type CutoffKind string

const (
	CutoffSemiMonthly CutoffKind = "semi_monthly"
	CutoffMonthly     CutoffKind = "monthly"
)

// CutoffsPerYear returns the annualization factor for the cutoff kind.
func (k CutoffKind) CutoffsPerYear() int64 {
	if k == CutoffMonthly {
		return 12
	}
	return 24
}

// CutoffsPerMonth returns how many cutoffs a calendar month holds; monthly
// statutory figures divide by this to get the per-cutoff share.
func (k CutoffKind) CutoffsPerMonth() int64 {
	if k == CutoffMonthly {
		return 1
	}
	return 2
}

func (k CutoffKind) Valid() bool {
	return k == CutoffSemiMonthly || k == CutoffMonthly
}

type Status string

const (
	StatusOpen       Status = "open"
	StatusProcessing Status = "processing"
	StatusClosed     Status = "closed"
)

// PayPeriod - a cutoff date range. No two periods of the same cutoff kind
// may overlap; the repository enforces this on create.
type PayPeriod struct {
	ID         string
	StartDate  time.Time
	EndDate    time.Time
	CutoffKind CutoffKind
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

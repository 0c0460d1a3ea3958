package discipline

import "time"

// ResponseWindowDays is the twin-notice rule's explanation window: the
// deadline is fixed at issuance and never recomputed.
const ResponseWindowDays = 5

type Status string

const (
	StatusIssued              Status = "issued"
	StatusExplanationReceived Status = "explanation_received"
	StatusResolved            Status = "resolved"
)

// HR may resolve directly from issued once the deadline passes, so both
// non-terminal states may move to resolved.
var statusTransitions = map[Status][]Status{
	StatusIssued:              {StatusExplanationReceived, StatusResolved},
	StatusExplanationReceived: {StatusResolved},
	StatusResolved:            {},
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Sanction severities, ordered lightest to heaviest.
type Sanction string

const (
	SanctionVerbalWarning  Sanction = "verbal_warning"
	SanctionWrittenWarning Sanction = "written_warning"
	SanctionSuspension     Sanction = "suspension"
	SanctionTermination    Sanction = "termination"
)

func (s Sanction) Valid() bool {
	switch s {
	case SanctionVerbalWarning, SanctionWrittenWarning, SanctionSuspension, SanctionTermination:
		return true
	}
	return false
}

type DisciplinaryNotice struct {
	ID               string
	EmployeeID       string
	Violation        string
	IssuedAt         time.Time
	ResponseDeadline time.Time
	Status           Status
	Sanction         *Sanction
	ResolutionNotes  *string
	IssuedBy         string
	ResolvedAt       *time.Time
	ResolvedBy       *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DeadlineFor computes the fixed response deadline from the issue time.
func DeadlineFor(issuedAt time.Time) time.Time {
	return issuedAt.AddDate(0, 0, ResponseWindowDays)
}

// Explanation - at most one per notice, immutable once written.
type Explanation struct {
	ID          string
	NoticeID    string
	Text        string
	SubmittedAt time.Time
	IsLate      bool
}

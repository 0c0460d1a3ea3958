package discipline

import "errors"

var (
	ErrNoticeNotFound          = errors.New("disciplinary notice not found")
	ErrNoticeAlreadyResolved   = errors.New("disciplinary notice is already resolved")
	ErrExplanationNotAllowed   = errors.New("explanation can only be submitted while the notice is issued")
	ErrExplanationExists       = errors.New("an explanation has already been submitted for this notice")
	ErrSanctionRequired        = errors.New("a sanction is required to resolve a notice")
	ErrInvalidSanction         = errors.New("sanction must be one of verbal_warning, written_warning, suspension, termination")
)

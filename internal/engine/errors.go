package engine

import (
	"errors"
	"fmt"
)

// ErrInvariant marks an internal consistency failure such as a chip
// conservation mismatch. It indicates a defect in the engine; the
// transition that detected it is aborted and the prior state returned.
var ErrInvariant = errors.New("engine invariant violated")

// RejectCode is a machine-readable reason for refusing an action.
type RejectCode string

const (
	RejectOutOfTurn           RejectCode = "out-of-turn"
	RejectWrongStreet         RejectCode = "wrong-street"
	RejectIllegalAction       RejectCode = "illegal-action"
	RejectBelowMinimum        RejectCode = "below-minimum"
	RejectInsufficientChips   RejectCode = "insufficient-chips"
	RejectInsufficientPlayers RejectCode = "insufficient-players"
	RejectHandOver            RejectCode = "hand-over"
	RejectHandInProgress      RejectCode = "hand-in-progress"
)

// Rejection refuses an action without changing state. The caller
// receives the unchanged prior snapshot alongside it and decides
// whether to surface the reason to the user.
type Rejection struct {
	Code   RejectCode `json:"code"`
	Reason string     `json:"reason"`
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Reason)
}

// IsRejection reports whether err is an engine rejection, as opposed
// to an internal failure.
func IsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

func reject(code RejectCode, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Reason: fmt.Sprintf(format, args...)}
}

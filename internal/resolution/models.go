// Package resolution drives the review workflow: flagged records enter the
// task queue, an officer commits a single verification outcome, and the record
// leaves the queue permanently.
package resolution

import (
	"voteguard/internal/roll"
	dErrors "voteguard/pkg/domain-errors"
)

// Outcome is the verification verdict an officer commits for a flagged record.
type Outcome string

const (
	OutcomeVerified  Outcome = "Verified"
	OutcomeShifted   Outcome = "Shifted"
	OutcomeDeceased  Outcome = "Deceased"
	OutcomeDuplicate Outcome = "Duplicate"
)

// ParseOutcome validates an outcome supplied by a caller.
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomeVerified, OutcomeShifted, OutcomeDeceased, OutcomeDuplicate:
		return Outcome(s), nil
	}
	return "", dErrors.New(dErrors.CodeBadRequest, "unknown resolution outcome")
}

// status maps the verdict onto the record's roll status. Verified confirms the
// record, so it returns to Active rather than to a "Verified" state of its own.
func (o Outcome) status() roll.Status {
	switch o {
	case OutcomeVerified:
		return roll.StatusActive
	case OutcomeShifted:
		return roll.StatusShifted
	case OutcomeDeceased:
		return roll.StatusDeceased
	default:
		return roll.StatusDuplicate
	}
}

// archives reports whether the verdict removes the record from the live roll.
func (o Outcome) archives() bool {
	switch o {
	case OutcomeShifted, OutcomeDeceased, OutcomeDuplicate:
		return true
	}
	return false
}

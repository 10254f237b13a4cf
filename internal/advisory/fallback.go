package advisory

import (
	"fmt"
	"strings"

	"voteguard/internal/conflict"
	"voteguard/internal/roll"
)

// FallbackRiskExplanation builds a deterministic narrative from the record's
// own fields. Same record in, same text out.
func FallbackRiskExplanation(v roll.Voter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Record %s carries a risk score of %d (%s).",
		v.ID, v.RiskScore, conflict.BucketFor(v.RiskScore))

	if len(v.FlaggedReasons) > 0 {
		fmt.Fprintf(&b, " Flagged for: %s.", strings.Join(v.FlaggedReasons, "; "))
	} else if v.IsFlagged {
		b.WriteString(" Flagged for review without a recorded reason.")
	} else {
		b.WriteString(" No review flags are recorded.")
	}

	switch violation := v.DocumentationViolation(); {
	case v.AadhaarMeta != nil && v.AadhaarMeta.Consistency == roll.ConsistencyInconsistent:
		b.WriteString(" The linked identity document is inconsistent with the roll entry.")
	case violation:
		b.WriteString(" Documentary proof on file does not satisfy verification requirements.")
	default:
		fmt.Fprintf(&b, " Last field verification was in %d.", v.LastVerifiedYear)
	}
	return b.String()
}

// FallbackResolutionAdvice recommends retaining the most recently verified
// cluster member. Ties keep the earliest member in cluster order.
func FallbackResolutionAdvice(members []roll.Voter) (Advice, bool) {
	if len(members) == 0 {
		return Advice{}, false
	}
	best := members[0]
	for _, m := range members[1:] {
		if m.LastVerifiedYear > best.LastVerifiedYear {
			best = m
		}
	}
	return Advice{
		RecommendedID: best.ID,
		Rationale: fmt.Sprintf(
			"Retain %s (%s, %s): most recently verified entry in the cluster (%d). Mark the remaining entries as Duplicate.",
			best.ID, best.Name, best.State, best.LastVerifiedYear),
	}, true
}

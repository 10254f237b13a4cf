// Package advisory produces explanatory guidance for flagged records and
// conflict clusters. Guidance is advisory only: it never mutates roster state,
// and a failing generator degrades to a deterministic fallback rather than
// failing the caller.
package advisory

import (
	"context"

	"voteguard/internal/roll"
	"voteguard/pkg/platform/sentinel"
)

// Advice recommends which cluster member to retain.
type Advice struct {
	RecommendedID string `json:"recommendedId"`
	Rationale     string `json:"rationale"`
}

// RiskExplanation is a narrative account of why a record carries its risk.
type RiskExplanation struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

// ResolutionAdvice is the cluster-level recommendation surfaced to officers.
type ResolutionAdvice struct {
	Advice
	Fallback bool `json:"fallback"`
}

// Generator is an external narrative engine. Implementations may be remote and
// slow; callers are expected to wrap them with retry and fallback.
type Generator interface {
	ExplainRisk(ctx context.Context, voter roll.Voter) (string, error)
	SuggestResolution(ctx context.Context, members []roll.Voter) (Advice, error)
}

// Unconfigured is the generator used when no narrative engine is wired. Every
// call reports unavailability, which the service turns into fallback guidance.
type Unconfigured struct{}

func (Unconfigured) ExplainRisk(context.Context, roll.Voter) (string, error) {
	return "", sentinel.ErrUnavailable
}

func (Unconfigured) SuggestResolution(context.Context, []roll.Voter) (Advice, error) {
	return Advice{}, sentinel.ErrUnavailable
}

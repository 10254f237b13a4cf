package resolution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"voteguard/internal/audit"
	"voteguard/internal/extraction"
	"voteguard/internal/identity"
	"voteguard/internal/resolution/metrics"
	"voteguard/internal/roll"
	dErrors "voteguard/pkg/domain-errors"
	"voteguard/pkg/platform/sentinel"
	"voteguard/pkg/requestcontext"
)

var tracer = otel.Tracer("voteguard/resolution")

// Service commits verification outcomes against the record store. Atomicity
// rests entirely on the store's Update serialization: the mutate closure reads,
// validates, and rewrites the record under the store's exclusion.
type Service struct {
	store   roll.Store
	auditor *audit.Log
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(store roll.Store, auditor *audit.Log, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{store: store, auditor: auditor, metrics: m, logger: logger}
}

// Tasks returns the live review queue: flagged, non-archived records in store
// order. The queue is derived on every call, never persisted.
func (s *Service) Tasks(ctx context.Context) ([]roll.Voter, error) {
	voters, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	var tasks []roll.Voter
	for _, v := range voters {
		if v.IsFlagged && !v.IsArchived {
			tasks = append(tasks, v)
		}
	}
	return tasks, nil
}

// Resolve commits the officer's verdict. The record leaves the task queue
// whatever the outcome; terminal verdicts also archive it and zero its risk.
// Exactly one history entry records the prior flag reasons.
func (s *Service) Resolve(ctx context.Context, id string, outcome Outcome, remarks string, resolver identity.Principal) (roll.Voter, error) {
	if !resolver.Role.CanResolve() {
		return roll.Voter{}, dErrors.New(dErrors.CodeForbidden, "role may not resolve records")
	}
	if strings.TrimSpace(remarks) == "" {
		return roll.Voter{}, dErrors.New(dErrors.CodeBadRequest, "remarks are required")
	}

	ctx, span := tracer.Start(ctx, "resolution.Resolve")
	defer span.End()
	span.SetAttributes(
		attribute.String("voter.id", id),
		attribute.String("resolution.outcome", string(outcome)),
	)

	now := requestcontext.Now(ctx)
	updated, err := s.store.Update(ctx, id, func(v roll.Voter) (roll.Voter, error) {
		if v.IsArchived {
			return v, sentinel.ErrInvalidTransition
		}

		entry := roll.FlagHistory{
			Timestamp:     now,
			ResolvedBy:    resolver.Label(),
			Resolution:    string(outcome),
			Remarks:       remarks,
			OriginalFlags: v.FlaggedReasons,
		}

		v.Status = outcome.status()
		v.IsFlagged = false
		v.FlaggedReasons = []string{}
		if outcome.archives() {
			v.IsArchived = true
			v.RiskScore = 0
		}
		v.FlaggedHistory = append(v.FlaggedHistory, entry)
		return v, nil
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrInvalidTransition) {
			s.metrics.IncrementInvalidTransition()
		}
		return roll.Voter{}, err
	}

	s.metrics.IncrementResolution(string(outcome))
	s.recordAudit(ctx, resolver, audit.ActionRecordResolved,
		fmt.Sprintf("Resolved %s as %s: %s", id, outcome, remarks))

	s.logger.InfoContext(ctx, "record resolved",
		"voter_id", id,
		"outcome", string(outcome),
		"resolved_by", resolver.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return updated, nil
}

// Decommission archives a record on civil-registry evidence. Unlike Resolve it
// overwrites the flag reasons with the registry reason and appends no history
// entry: the registry, not an officer's review, is the authority here.
func (s *Service) Decommission(ctx context.Context, id string, reason string, actor identity.Principal) (roll.Voter, error) {
	if !actor.Role.CanDecommission() {
		return roll.Voter{}, dErrors.New(dErrors.CodeForbidden, "role may not decommission records")
	}
	if strings.TrimSpace(reason) == "" {
		return roll.Voter{}, dErrors.New(dErrors.CodeBadRequest, "a decommission reason is required")
	}

	ctx, span := tracer.Start(ctx, "resolution.Decommission")
	defer span.End()
	span.SetAttributes(attribute.String("voter.id", id))

	updated, err := s.store.Update(ctx, id, func(v roll.Voter) (roll.Voter, error) {
		if v.IsArchived {
			return v, sentinel.ErrInvalidTransition
		}

		v.Status = roll.StatusDeceased
		v.IsArchived = true
		v.IsFlagged = false
		v.RiskScore = 0
		v.FlaggedReasons = []string{reason}
		return v, nil
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrInvalidTransition) {
			s.metrics.IncrementInvalidTransition()
		}
		return roll.Voter{}, err
	}

	s.metrics.IncrementDecommission()
	s.recordAudit(ctx, actor, audit.ActionRecordDecommissioned,
		fmt.Sprintf("Decommissioned %s: %s", id, reason))

	s.logger.InfoContext(ctx, "record decommissioned",
		"voter_id", id,
		"reason", reason,
		"decommissioned_by", actor.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return updated, nil
}

// MatchExtracted finds the roster record a certificate refers to: the extracted
// id number as a substring of the record id, or an exact case-insensitive name
// match. First match in store order wins; no match is ErrNotFound.
func (s *Service) MatchExtracted(ctx context.Context, extracted extraction.Extracted) (roll.Voter, error) {
	voters, err := s.store.List(ctx)
	if err != nil {
		return roll.Voter{}, err
	}
	for _, v := range voters {
		if extracted.IDNumber != "" && strings.Contains(v.ID, extracted.IDNumber) {
			return v, nil
		}
		if extracted.Name != "" && strings.EqualFold(v.Name, extracted.Name) {
			return v, nil
		}
	}
	return roll.Voter{}, sentinel.ErrNotFound
}

// recordAudit never fails the already-committed mutation.
func (s *Service) recordAudit(ctx context.Context, actor identity.Principal, action, details string) {
	if s.auditor == nil {
		return
	}
	err := s.auditor.Record(ctx, audit.Entry{
		UserID:   actor.ID,
		UserName: actor.Label(),
		Action:   action,
		Details:  details,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to record audit entry",
			"action", action,
			"error", err,
		)
	}
}

package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"voteguard/internal/roll"
	"voteguard/pkg/platform/circuit"
	"voteguard/pkg/platform/retry"
)

var fallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "voteguard_advisory_fallbacks_total",
	Help: "Total advisory requests served by the deterministic fallback",
}, []string{"kind"})

const cacheTTL = 24 * time.Hour

// Service wraps a Generator with retry, caching, and deterministic fallback.
// Its methods never fail because the generator does: guidance is always
// returned, with Fallback marking whether the engine contributed.
type Service struct {
	generator Generator
	cache     Cache
	policy    retry.Policy
	breaker   *circuit.Breaker
	logger    *slog.Logger
}

func NewService(generator Generator, cache Cache, policy retry.Policy, logger *slog.Logger) *Service {
	if generator == nil {
		generator = Unconfigured{}
	}
	if cache == nil {
		cache = NoopCache{}
	}
	return &Service{
		generator: generator,
		cache:     cache,
		policy:    policy,
		breaker:   circuit.New("advisory-generator", circuit.WithFailureThreshold(3), circuit.WithSuccessThreshold(2)),
		logger:    logger,
	}
}

// ExplainRisk narrates the record's risk profile. Generated text is cached per
// record; on generator failure the deterministic fallback is returned instead.
func (s *Service) ExplainRisk(ctx context.Context, voter roll.Voter) RiskExplanation {
	key := riskCacheKey(voter)
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "advisory cache read failed", "key", key, "error", err)
	} else if ok {
		return RiskExplanation{Text: cached}
	}

	if s.breaker.IsOpen() {
		fallbacksTotal.WithLabelValues("risk").Inc()
		return RiskExplanation{Text: FallbackRiskExplanation(voter), Fallback: true}
	}

	text, err := retry.Do(ctx, s.policy, func(ctx context.Context) (string, error) {
		return s.generator.ExplainRisk(ctx, voter)
	})
	if err != nil {
		if _, change := s.breaker.RecordFailure(); change.Opened {
			s.logger.WarnContext(ctx, "advisory generator circuit opened")
		}
		s.logger.InfoContext(ctx, "risk narrative degraded to fallback", "voter_id", voter.ID, "error", err)
		fallbacksTotal.WithLabelValues("risk").Inc()
		return RiskExplanation{Text: FallbackRiskExplanation(voter), Fallback: true}
	}
	s.breaker.RecordSuccess()

	if err := s.cache.Set(ctx, key, text, cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "advisory cache write failed", "key", key, "error", err)
	}
	return RiskExplanation{Text: text}
}

// riskCacheKey includes the identity sync revision so re-linked records do not
// serve stale narratives.
func riskCacheKey(v roll.Voter) string {
	revision := 0
	if v.AadhaarMeta != nil {
		revision = v.AadhaarMeta.SyncRevision
	}
	return fmt.Sprintf("risk:%s:%d", v.ID, revision)
}

// SuggestResolution recommends which cluster member to retain. The cache key is
// the shared anchor so every member of the cluster sees the same advice.
func (s *Service) SuggestResolution(ctx context.Context, anchorHash string, members []roll.Voter) (ResolutionAdvice, error) {
	if len(members) == 0 {
		return ResolutionAdvice{}, fmt.Errorf("cluster %s has no members", anchorHash)
	}

	key := "resolution:" + anchorHash
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "advisory cache read failed", "key", key, "error", err)
	} else if ok {
		var advice Advice
		if err := json.Unmarshal([]byte(cached), &advice); err == nil {
			return ResolutionAdvice{Advice: advice}, nil
		}
	}

	if s.breaker.IsOpen() {
		fallbacksTotal.WithLabelValues("resolution").Inc()
		fallback, _ := FallbackResolutionAdvice(members)
		return ResolutionAdvice{Advice: fallback, Fallback: true}, nil
	}

	advice, err := retry.Do(ctx, s.policy, func(ctx context.Context) (Advice, error) {
		return s.generator.SuggestResolution(ctx, members)
	})
	if err != nil {
		if _, change := s.breaker.RecordFailure(); change.Opened {
			s.logger.WarnContext(ctx, "advisory generator circuit opened")
		}
		s.logger.InfoContext(ctx, "resolution advice degraded to fallback", "anchor", anchorHash, "error", err)
		fallbacksTotal.WithLabelValues("resolution").Inc()
		fallback, _ := FallbackResolutionAdvice(members)
		return ResolutionAdvice{Advice: fallback, Fallback: true}, nil
	}
	s.breaker.RecordSuccess()

	if payload, marshalErr := json.Marshal(advice); marshalErr == nil {
		if err := s.cache.Set(ctx, key, string(payload), cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "advisory cache write failed", "key", key, "error", err)
		}
	}
	return ResolutionAdvice{Advice: advice}, nil
}

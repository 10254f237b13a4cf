// Package extraction turns uploaded civil-registry documents into structured
// certificate data. The parsing engine is an external collaborator; this
// service only bounds its failure modes.
package extraction

import (
	"context"
	"log/slog"

	"voteguard/pkg/platform/retry"
	"voteguard/pkg/platform/sentinel"
)

// Extracted holds the fields recovered from a death certificate.
type Extracted struct {
	Name        string `json:"name"`
	IDNumber    string `json:"idNumber"`
	DateOfDeath string `json:"dateOfDeath"`
}

// Extractor parses a raw document image or PDF.
type Extractor interface {
	Extract(ctx context.Context, document []byte, mimeType string) (Extracted, error)
}

// Unconfigured is the extractor used when no parsing engine is wired.
type Unconfigured struct{}

func (Unconfigured) Extract(context.Context, []byte, string) (Extracted, error) {
	return Extracted{}, sentinel.ErrUnavailable
}

// Service retries the extractor within a bounded budget. Exhaustion surfaces
// as ErrUnavailable so callers can degrade to manual entry.
type Service struct {
	extractor Extractor
	policy    retry.Policy
	logger    *slog.Logger
}

func NewService(extractor Extractor, policy retry.Policy, logger *slog.Logger) *Service {
	if extractor == nil {
		extractor = Unconfigured{}
	}
	return &Service{extractor: extractor, policy: policy, logger: logger}
}

func (s *Service) Extract(ctx context.Context, document []byte, mimeType string) (Extracted, error) {
	out, err := retry.Do(ctx, s.policy, func(ctx context.Context) (Extracted, error) {
		return s.extractor.Extract(ctx, document, mimeType)
	})
	if err != nil {
		s.logger.InfoContext(ctx, "certificate extraction unavailable", "error", err)
		return Extracted{}, sentinel.ErrUnavailable
	}
	return out, nil
}

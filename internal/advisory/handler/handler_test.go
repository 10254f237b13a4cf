package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voteguard/internal/advisory"
	"voteguard/internal/roll"
	"voteguard/pkg/platform/retry"
)

func newRouter(t *testing.T, voters ...roll.Voter) chi.Router {
	t.Helper()

	store := roll.NewInMemoryStore()
	for _, v := range voters {
		require.NoError(t, store.Insert(context.Background(), v))
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := advisory.NewService(advisory.Unconfigured{}, nil,
		retry.Policy{MaxAttempts: 1, BaseDelay: time.Millisecond}, logger)

	router := chi.NewRouter()
	New(store, svc, logger).Register(router)
	return router
}

func get(router chi.Router, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRiskAdvisory_FallbackAlwaysAnswers(t *testing.T) {
	router := newRouter(t, roll.Voter{
		ID: "VOT-1", RiskScore: 85, IsFlagged: true,
		FlaggedReasons: []string{"address mismatch"},
	})

	rec := get(router, "/roll/voters/VOT-1/advisory")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Explanation advisory.RiskExplanation `json:"explanation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Explanation.Fallback)
	assert.Contains(t, resp.Explanation.Text, "address mismatch")
}

func TestRiskAdvisory_UnknownVoter(t *testing.T) {
	router := newRouter(t)
	rec := get(router, "/roll/voters/missing/advisory")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClusterAdvisory(t *testing.T) {
	router := newRouter(t,
		roll.Voter{ID: "A", LastVerifiedYear: 2023, AadhaarMeta: &roll.AadhaarMetadata{IDHash: "HID-X"}},
		roll.Voter{ID: "B", LastVerifiedYear: 2021, AadhaarMeta: &roll.AadhaarMetadata{IDHash: "HID-X"}},
	)

	rec := get(router, "/clusters/HID-X/advisory")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Members int                       `json:"members"`
		Advice  advisory.ResolutionAdvice `json:"advice"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Members)
	assert.Equal(t, "A", resp.Advice.RecommendedID)
}

func TestClusterAdvisory_UnknownAnchor(t *testing.T) {
	router := newRouter(t, roll.Voter{ID: "A"})
	rec := get(router, "/clusters/HID-NONE/advisory")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voteguard/internal/roll"
)

func newRouter(t *testing.T, voters ...roll.Voter) chi.Router {
	t.Helper()

	store := roll.NewInMemoryStore()
	for _, v := range voters {
		require.NoError(t, store.Insert(context.Background(), v))
	}

	router := chi.NewRouter()
	New(store, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(router)
	return router
}

func anchored(id, anchor string) roll.Voter {
	return roll.Voter{ID: id, Status: roll.StatusActive, AadhaarMeta: &roll.AadhaarMetadata{IDHash: anchor}}
}

func get(router chi.Router, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestClusters(t *testing.T) {
	router := newRouter(t,
		anchored("A", "HID-X"),
		anchored("B", "HID-X"),
		anchored("C", "HID-SOLO"),
	)

	rec := get(router, "/clusters")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestConflicts_EmptyIsOK(t *testing.T) {
	router := newRouter(t, anchored("A", "HID-X"))

	rec := get(router, "/roll/voters/A/conflicts")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"voterId":"A","conflicts":[]}`, rec.Body.String())
}

func TestSummary(t *testing.T) {
	router := newRouter(t,
		anchored("A", "HID-X"),
		anchored("B", "HID-X"),
		roll.Voter{ID: "C", Status: roll.StatusPending, IsFlagged: true, RiskScore: 90},
	)

	rec := get(router, "/dashboard/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Summary struct {
			TotalActive      int `json:"totalActive"`
			Flagged          int `json:"flagged"`
			CriticalRisk     int `json:"criticalRisk"`
			ConflictClusters int `json:"conflictClusters"`
		} `json:"summary"`
		RiskBuckets map[string]int `json:"riskBuckets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Summary.TotalActive)
	assert.Equal(t, 1, resp.Summary.Flagged)
	assert.Equal(t, 1, resp.Summary.CriticalRisk)
	assert.Equal(t, 1, resp.Summary.ConflictClusters)
	assert.Equal(t, 1, resp.RiskBuckets["Critical"])
	assert.Equal(t, 2, resp.RiskBuckets["Low"])
}

package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voteguard/internal/audit"
	"voteguard/internal/identity"
	"voteguard/pkg/testutil"
)

var officer = identity.Principal{ID: "AD-1", Name: "Meera Iyer", Role: identity.RoleAdministrator}

func newRouter(t *testing.T, entries ...audit.Entry) chi.Router {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := audit.NewInMemoryStore()
	log := audit.NewLog(store, nil, logger)
	for _, e := range entries {
		require.NoError(t, log.Record(context.Background(), e))
	}

	router := chi.NewRouter()
	New(log, logger).Register(router)
	return router
}

func TestList_RequiresPrincipal(t *testing.T) {
	router := newRouter(t)
	req := testutil.NewJSONRequest(t, http.MethodGet, "/audit/logs", nil)
	rr := testutil.DoRequest(router, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestList_NewestFirstWithLimit(t *testing.T) {
	router := newRouter(t,
		audit.Entry{Action: audit.ActionRecordResolved, Details: "first"},
		audit.Entry{Action: audit.ActionRecordResolved, Details: "second"},
		audit.Entry{Action: audit.ActionRecordDecommissioned, Details: "third"},
	)

	req := testutil.WithPrincipal(testutil.NewJSONRequest(t, http.MethodGet, "/audit/logs?limit=2", nil), officer)
	rr := testutil.DoRequest(router, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Entries []audit.Entry `json:"entries"`
		Count   int           `json:"count"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "third", resp.Entries[0].Details)
	assert.Equal(t, "second", resp.Entries[1].Details)
}

func TestList_BadLimit(t *testing.T) {
	router := newRouter(t)
	req := testutil.WithPrincipal(testutil.NewJSONRequest(t, http.MethodGet, "/audit/logs?limit=zero", nil), officer)
	rr := testutil.DoRequest(router, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

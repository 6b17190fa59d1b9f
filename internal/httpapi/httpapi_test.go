package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rushjob-engine/internal/ats"
	"rushjob-engine/internal/config"
	"rushjob-engine/internal/dispatch"
	"rushjob-engine/internal/domain"
	"rushjob-engine/internal/events"
	"rushjob-engine/internal/poll"
	"rushjob-engine/internal/store"
)

type stubOrgStore struct{ orgs []domain.Organization }

func (s stubOrgStore) ListActiveOrganizations(context.Context) ([]domain.Organization, error) {
	return s.orgs, nil
}

type stubConnector struct{ postings []domain.Posting }

func (c stubConnector) Type() string { return "stub" }
func (c stubConnector) ListPostings(context.Context, domain.Organization) ([]domain.Posting, error) {
	return c.postings, nil
}

type stubProcessor struct{ res dispatch.Result }

func (p stubProcessor) Process(context.Context, domain.Organization, []domain.Posting) (dispatch.Result, error) {
	return p.res, nil
}

func testDeps(t *testing.T) (Deps, *store.DB) {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	org := domain.Organization{Slug: "stripe", Name: "Stripe", SourceType: "stub", BoardToken: "stripe", Active: true}
	conn := stubConnector{postings: []domain.Posting{
		{ExternalID: "1", OrgSlug: "stripe", Title: "Engineer", LocationRaw: "Remote"},
	}}
	p := poll.New(poll.Config{RatePerMinute: 100000}, stubOrgStore{orgs: []domain.Organization{org}},
		map[string]ats.Connector{"stub": conn}, stubProcessor{res: dispatch.Result{New: 1}}, nil)

	var cfgVal atomic.Value
	cfgVal.Store(config.Config{})

	return Deps{Store: db, Hub: events.NewHub(), CfgVal: &cfgVal, Poller: p}, db
}

func TestHealth(t *testing.T) {
	deps, _ := testDeps(t)
	srv := httptest.NewServer(NewMux(deps))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
}

func TestStatusBeforeAnyCycle(t *testing.T) {
	deps, _ := testDeps(t)
	srv := httptest.NewServer(NewMux(deps))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestManualPollReturnsSummary(t *testing.T) {
	deps, _ := testDeps(t)
	srv := httptest.NewServer(NewMux(deps))
	defer srv.Close()

	res, err := http.Post(srv.URL+"/poll", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var summary poll.CycleSummary
	require.NoError(t, json.NewDecoder(res.Body).Decode(&summary))
	require.Len(t, summary.Orgs, 1)
	assert.Equal(t, "stripe", summary.Orgs[0].Slug)
	assert.Equal(t, poll.StatusSucceeded, summary.Orgs[0].Status)
	assert.Equal(t, 1, summary.New)

	// the cycle is now visible on /status too
	st, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer st.Body.Close()
	assert.Equal(t, http.StatusOK, st.StatusCode)
}

func TestPollWrongMethod(t *testing.T) {
	deps, _ := testDeps(t)
	srv := httptest.NewServer(NewMux(deps))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/poll")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestPostingsList(t *testing.T) {
	deps, db := testDeps(t)
	ctx := context.Background()
	_, err := db.UpsertPosting(ctx, domain.Posting{
		OrgSlug: "stripe", ExternalID: "7", Title: "Platform Engineer", LocationRaw: "Berlin",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(NewMux(deps))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/postings?limit=10")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var got []domain.Posting
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "Platform Engineer", got[0].Title)

	bad, err := http.Get(srv.URL + "/postings?limit=0")
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

package lever

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rushjob-engine/internal/ats"
	"rushjob-engine/internal/domain"
)

const samplePostings = `[
  {
    "id": "a1b2",
    "text": "Backend Engineer",
    "hostedUrl": "https://jobs.lever.co/acme/a1b2",
    "categories": {"location": "Berlin", "team": "Platform", "commitment": "Full-time"},
    "workplaceType": "hybrid"
  },
  {
    "id": "c3d4",
    "text": "Data Science Intern",
    "hostedUrl": "https://jobs.lever.co/acme/c3d4",
    "categories": {"location": "", "team": "Data"},
    "workplaceType": "remote"
  },
  {
    "id": "",
    "text": "Ghost entry without an id",
    "hostedUrl": "https://jobs.lever.co/acme/none"
  }
]`

func testOrg() domain.Organization {
	return domain.Organization{Slug: "acme", Name: "Acme", SourceType: "lever", BoardToken: "acme", Active: true}
}

func TestListPostings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acme", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("mode"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePostings))
	}))
	defer srv.Close()

	c := New()
	c.BaseURL = srv.URL

	got, err := c.ListPostings(context.Background(), testOrg())
	require.NoError(t, err)
	require.Len(t, got, 2) // entry without id is dropped

	assert.Equal(t, "a1b2", got[0].ExternalID)
	assert.Equal(t, "Backend Engineer", got[0].Title)
	assert.Equal(t, "Berlin", got[0].LocationRaw) // hybrid does not imply remote
	assert.Equal(t, "Platform", got[0].Department)
	assert.Equal(t, "Full-time", got[0].JobType)

	// remote workplace with no location collapses to the bare token,
	// and the intern title fills the missing commitment
	assert.Equal(t, "Remote", got[1].LocationRaw)
	assert.Equal(t, "Intern", got[1].JobType)
}

func TestListPostingsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New()
	c.BaseURL = srv.URL

	_, err := c.ListPostings(context.Background(), testOrg())
	require.Error(t, err)

	var serr *ats.SourceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "acme", serr.OrgSlug)
}

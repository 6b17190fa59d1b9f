package board

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

const samplePage = `<html><body>
<section>
  <h3>Engineering</h3>
  <div class="opening">
    <a href="/acme/jobs/123456">Backend Engineer</a>
    <span class="location">Berlin, Germany</span>
  </div>
  <div class="opening">
    <a href="/acme/jobs/123457">Platform Engineer</a>
    <span class="location">Remote</span>
  </div>
  <div class="opening">
    <a href="/acme/about">Not a job</a>
  </div>
</section>
</body></html>`

func TestListPostingsParsesBoardPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acme", r.URL.Path)
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	c := New()
	c.BaseURL = srv.URL
	c.HC = srv.Client()

	org := domain.Organization{Slug: "acme", BoardToken: "acme", SourceType: "board_html"}
	got, err := c.ListPostings(context.Background(), org)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "123456", got[0].ExternalID)
	assert.Equal(t, "Backend Engineer", got[0].Title)
	assert.Equal(t, "Berlin, Germany", got[0].LocationRaw)
	assert.Equal(t, "Engineering", got[0].Department)
	assert.Equal(t, srv.URL+"/acme/jobs/123456", got[0].URL)
}

func TestListPostingsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New()
	c.BaseURL = srv.URL
	c.HC = srv.Client()

	_, err := c.ListPostings(context.Background(), domain.Organization{Slug: "acme", BoardToken: "acme"})
	var serr *ats.SourceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "acme", serr.OrgSlug)
}

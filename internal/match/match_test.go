package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rushjob-engine/internal/domain"
	"rushjob-engine/internal/location"
)

func engine() *Engine {
	return &Engine{Loc: location.New(location.DefaultTable())}
}

func posting() domain.Posting {
	return domain.Posting{
		ExternalID:  "101",
		OrgSlug:     "stripe",
		Title:       "Senior Backend Engineer",
		LocationRaw: "Seattle, San Francisco, US-Remote",
		Department:  "Engineering",
		JobType:     "Full-time",
	}
}

func evaluate(t *testing.T, a domain.Alert) bool {
	t.Helper()
	ok, err := engine().Evaluate(posting(), a)
	require.NoError(t, err)
	return ok
}

func TestKeywordOrSemantics(t *testing.T) {
	assert.True(t, evaluate(t, domain.Alert{TitleKeywords: []string{"senior", "staff"}}))
	assert.True(t, evaluate(t, domain.Alert{TitleKeywords: []string{"engineer"}}))
	assert.False(t, evaluate(t, domain.Alert{TitleKeywords: []string{"manager"}}))
}

func TestKeywordAllModeIsExplicit(t *testing.T) {
	two := []string{"senior", "backend"}
	assert.True(t, evaluate(t, domain.Alert{TitleKeywords: two, KeywordMode: domain.KeywordAll}))

	// same keywords plus a miss: "all" fails, default "any" still passes
	three := []string{"senior", "backend", "manager"}
	assert.False(t, evaluate(t, domain.Alert{TitleKeywords: three, KeywordMode: domain.KeywordAll}))
	assert.True(t, evaluate(t, domain.Alert{TitleKeywords: three}))
}

func TestExcludeKeywords(t *testing.T) {
	assert.False(t, evaluate(t, domain.Alert{
		TitleKeywords:   []string{"engineer"},
		ExcludeKeywords: []string{"senior"},
	}))
}

func TestOrganizationFilter(t *testing.T) {
	assert.True(t, evaluate(t, domain.Alert{OrgSlugs: []string{"stripe", "figma"}}))
	assert.False(t, evaluate(t, domain.Alert{OrgSlugs: []string{"figma"}}))
	assert.True(t, evaluate(t, domain.Alert{})) // empty = all orgs
}

func TestLocationDelegation(t *testing.T) {
	assert.True(t, evaluate(t, domain.Alert{Locations: []string{"Remote"}}))
	assert.True(t, evaluate(t, domain.Alert{Locations: []string{"SF"}}))
	assert.False(t, evaluate(t, domain.Alert{Locations: []string{"Berlin"}}))
	assert.True(t, evaluate(t, domain.Alert{})) // empty = any location
}

func TestDepartmentAndJobType(t *testing.T) {
	assert.True(t, evaluate(t, domain.Alert{Department: "engineering"}))
	assert.False(t, evaluate(t, domain.Alert{Department: "Sales"}))
	assert.True(t, evaluate(t, domain.Alert{JobType: "FULL-TIME"}))
	assert.False(t, evaluate(t, domain.Alert{JobType: "Intern"}))
}

func TestMissingFieldFailsConfiguredFilter(t *testing.T) {
	p := posting()
	p.Department = ""
	ok, err := engine().Evaluate(p, domain.Alert{Department: "Engineering"})
	require.NoError(t, err)
	assert.False(t, ok)

	// unconfigured filter still passes
	ok, err = engine().Evaluate(p, domain.Alert{})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMalformedAlert(t *testing.T) {
	e := engine()

	_, err := e.Evaluate(posting(), domain.Alert{ID: "a1", KeywordMode: "sometimes"})
	var aerr *AlertError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "a1", aerr.AlertID)

	_, err = e.Evaluate(posting(), domain.Alert{ID: "a2", TitleKeywords: []string{"  ", ""}})
	require.ErrorAs(t, err, &aerr)
}

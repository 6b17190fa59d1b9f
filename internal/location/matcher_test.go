package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesAliasSymmetry(t *testing.T) {
	m := New(DefaultTable())

	cases := []struct {
		raw     string
		targets []string
		want    bool
	}{
		{"US-NYC, US-SEA", []string{"New York"}, true},
		{"NYC", []string{"US-NYC, US-SEA"}, true},
		{"DE-Berlin", []string{"Germany"}, true},
		{"Remote in the US", []string{"Remote"}, true},
		{"US-Remote", []string{"Remote"}, true},
		{"Austin", []string{"New York"}, false},
		{"San Francisco; London | Tokyo", []string{"SF"}, true},
		{"São Paulo", []string{"sao paulo"}, true},
		{"Work from Home", []string{"remote"}, true},
		{"Chicago", []string{"Illinois"}, true},
		{"Seattle", []string{"Berlin"}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, m.Matches(c.raw, c.targets), "raw=%q targets=%v", c.raw, c.targets)
	}
}

func TestMatchesEmptyTargetsMatchAnything(t *testing.T) {
	m := New(DefaultTable())
	assert.True(t, m.Matches("Ulan Bator", nil))
	assert.True(t, m.Matches("", nil))
}

func TestNormalizeUnspecified(t *testing.T) {
	m := New(DefaultTable())

	assert.True(t, m.Normalize("").Contains(Unspecified))
	assert.True(t, m.Normalize("  ,; ").Contains(Unspecified))

	// unspecified matches no real target, only a target asking for it
	assert.False(t, m.Matches("", []string{"New York"}))
	assert.True(t, m.Matches("", []string{"unspecified"}))
}

func TestNormalizeCountryPrefix(t *testing.T) {
	m := New(DefaultTable())

	got := m.Normalize("US-NYC")
	assert.True(t, got.Contains("new_york"))
	assert.True(t, got.Contains("united_states"))

	// a bare two-letter word is not a prefix
	assert.True(t, m.Normalize("CA").Contains("california"))
}

func TestNormalizeUnknownPassThrough(t *testing.T) {
	m := New(DefaultTable())
	assert.True(t, m.Normalize("Fort Collins").Contains("fort_collins"))
	assert.True(t, m.Matches("Fort Collins", []string{"fort collins"}))
}

func TestNormalizeMemoizes(t *testing.T) {
	m := New(DefaultTable())
	m.Normalize("US-NYC, US-SEA")

	m.mu.RLock()
	_, cached := m.cache["US-NYC, US-SEA"]
	m.mu.RUnlock()
	assert.True(t, cached)

	// second call returns an equal set from the cache
	a := m.Normalize("US-NYC, US-SEA")
	b := m.Normalize("US-NYC, US-SEA")
	assert.True(t, a.Equal(b))
}

func TestCustomTable(t *testing.T) {
	table := &Table{
		Aliases:         map[string]string{"gotham": "new_york"},
		CountryPrefixes: map[string]string{},
		RemoteTokens:    map[string]bool{},
		Noise:           map[string]bool{},
	}
	m := New(table)
	assert.True(t, m.Matches("Gotham", []string{"gotham"}))
	assert.True(t, m.Normalize("Gotham").Contains("new_york"))
	// default-table knowledge is absent
	assert.False(t, m.Matches("NYC", []string{"New York"}))
}

// Package location normalizes the messy, multi-valued location strings that
// job boards publish ("US-NYC, US-SEA; Remote in the US") into sets of
// canonical tokens, and matches them against alert targets by intersection.
package location

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Matcher struct {
	table *Table

	mu    sync.RWMutex
	cache map[string][]string // raw string -> canonical tokens
}

func New(t *Table) *Matcher {
	return &Matcher{table: t, cache: make(map[string][]string)}
}

var (
	prefixRe = regexp.MustCompile(`^([a-z]{2})-(.+)$`)
	// everything but letters, digits, space and hyphen becomes a space
	punctRe  = regexp.MustCompile(`[^a-z0-9 -]+`)
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize resolves a raw location string to its canonical token set.
// Results are memoized per distinct raw string; the same string recurs
// across many postings of one board. Callers must not mutate the set.
func (m *Matcher) Normalize(raw string) mapset.Set[string] {
	m.mu.RLock()
	tokens, ok := m.cache[raw]
	m.mu.RUnlock()
	if !ok {
		tokens = m.normalize(raw)
		m.mu.Lock()
		m.cache[raw] = tokens
		m.mu.Unlock()
	}
	return mapset.NewThreadUnsafeSet(tokens...)
}

// Matches reports whether the posting location and any target resolve to
// intersecting canonical sets. An empty target list matches anything.
func (m *Matcher) Matches(raw string, targets []string) bool {
	if len(targets) == 0 {
		return true
	}
	got := m.Normalize(raw)
	for _, t := range targets {
		if got.Intersect(m.Normalize(t)).Cardinality() > 0 {
			return true
		}
	}
	return false
}

func (m *Matcher) normalize(raw string) []string {
	out := mapset.NewThreadUnsafeSet[string]()

	cleaned := fold(raw)
	cleaned = strings.ReplaceAll(cleaned, " and ", ",")
	cleaned = strings.ReplaceAll(cleaned, " or ", ",")
	for _, sep := range []string{";", "|", "/"} {
		cleaned = strings.ReplaceAll(cleaned, sep, ",")
	}

	for _, part := range strings.Split(cleaned, ",") {
		m.normalizePart(part, out)
	}

	if out.Cardinality() == 0 {
		out.Add(Unspecified)
	}

	tokens := out.ToSlice()
	sort.Strings(tokens)
	return tokens
}

func (m *Matcher) normalizePart(part string, out mapset.Set[string]) {
	part = punctRe.ReplaceAllString(part, " ")
	part = strings.TrimSpace(strings.Join(strings.Fields(part), " "))
	if part == "" {
		return
	}

	// "US-NYC" → country token plus the city remainder
	if sub := prefixRe.FindStringSubmatch(part); sub != nil {
		if country, ok := m.table.CountryPrefixes[sub[1]]; ok {
			out.Add(country)
			part = strings.TrimSpace(sub[2])
		}
	}

	part = strings.TrimSuffix(part, " headquarters")
	part = strings.TrimSuffix(part, " hq")

	phrase := strings.ReplaceAll(part, "-", " ")

	remote := false
	for _, p := range m.table.RemotePhrases {
		if strings.Contains(" "+phrase+" ", " "+p+" ") {
			remote = true
			break
		}
	}

	if canon, ok := m.table.Aliases[phrase]; ok {
		out.Add(canon)
		if remote {
			out.Add(Remote)
		}
		return
	}

	var unknown []string
	for _, tok := range strings.Fields(phrase) {
		switch {
		case m.table.Noise[tok]:
		case m.table.RemoteTokens[tok]:
			remote = true
		default:
			if canon, ok := m.table.Aliases[tok]; ok {
				out.Add(canon)
			} else {
				unknown = append(unknown, tok)
			}
		}
	}

	// whatever survives unresolved is its own canonical identity
	if len(unknown) > 0 {
		out.Add(strings.Join(unknown, "_"))
	}
	if remote {
		out.Add(Remote)
	}
}

// fold lowercases and strips diacritics so "São Paulo" and "sao paulo"
// normalize identically.
func fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(deaccent, s); err == nil {
		return folded
	}
	return s
}

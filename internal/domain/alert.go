package domain

const (
	// KeywordAny notifies when at least one title keyword appears.
	KeywordAny = "any"
	// KeywordAll requires every keyword. Must be configured explicitly;
	// it is never inferred from the number of keywords.
	KeywordAll = "all"
)

type Endpoint struct {
	Kind string // "discord" or "telegram"
	Ref  string // webhook URL or chat id
}

type Alert struct {
	ID              string
	Owner           string
	OrgSlugs        []string // empty = all organizations
	TitleKeywords   []string // case-insensitive substrings
	ExcludeKeywords []string // title must contain none of these
	KeywordMode     string   // KeywordAny (default) or KeywordAll
	Locations       []string // empty = any location
	Department      string   // exact, case-insensitive; "" = any
	JobType         string   // exact, case-insensitive; "" = any
	Endpoint        Endpoint
	Active          bool
}

// ScopedTo reports whether the alert covers the given organization.
func (a Alert) ScopedTo(slug string) bool {
	if len(a.OrgSlugs) == 0 {
		return true
	}
	for _, s := range a.OrgSlugs {
		if s == slug {
			return true
		}
	}
	return false
}

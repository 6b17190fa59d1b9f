package location

// Table holds the alias configuration the matcher resolves against. It is
// loaded once at startup and passed in explicitly, so tests can swap in a
// smaller table without touching process-wide state.
type Table struct {
	// Aliases maps a lowercase surface form to its canonical token.
	Aliases map[string]string
	// CountryPrefixes maps two-letter board prefixes ("US-NYC") to the
	// canonical token kept as a secondary country hit.
	CountryPrefixes map[string]string
	// RemoteTokens are single words that mark a posting as remote.
	RemoteTokens map[string]bool
	// RemotePhrases are multi-word indicators, checked as substrings of a
	// cleaned location part.
	RemotePhrases []string
	// Noise words dropped during tokenization.
	Noise map[string]bool
}

// Unspecified is the canonical token for an empty or unparseable location.
// It matches only targets that themselves normalize to it.
const Unspecified = "unspecified"

// Remote is the canonical token added whenever a remote indicator is found.
const Remote = "remote"

func DefaultTable() *Table {
	t := &Table{
		Aliases: make(map[string]string),
		CountryPrefixes: map[string]string{
			"us": "united_states",
			"ca": "canada",
			"uk": "united_kingdom",
			"de": "germany",
			"fr": "france",
			"au": "australia",
		},
		RemoteTokens: map[string]bool{
			"remote":      true,
			"wfh":         true,
			"telecommute": true,
			"distributed": true,
			"anywhere":    true,
			"virtual":     true,
		},
		RemotePhrases: []string{
			"work from home",
			"home based",
		},
		Noise: map[string]bool{
			"and": true, "or": true, "the": true, "in": true, "of": true,
			"area": true, "metro": true, "region": true, "greater": true,
		},
	}

	add := func(canonical string, surfaces ...string) {
		for _, s := range surfaces {
			if _, taken := t.Aliases[s]; !taken {
				t.Aliases[s] = canonical
			}
		}
	}

	// US cities; state names fold into the nearest major market so a city
	// target still hits postings that only name the state.
	add("chicago", "chicago", "chi", "illinois", "il")
	add("new_york", "new york", "nyc", "ny", "new york city", "manhattan", "brooklyn")
	add("san_francisco", "san francisco", "sf", "ssf", "south san francisco", "bay area")
	add("seattle", "seattle", "sea", "washington", "wa")
	add("atlanta", "atlanta", "atl", "georgia", "ga")
	add("boston", "boston", "massachusetts", "ma", "cambridge")
	add("texas", "texas", "tx", "dallas", "austin", "houston", "atx")
	add("california", "california", "ca", "calif")
	add("los_angeles", "los angeles", "la", "los angeles county")
	add("denver", "denver", "colorado", "co", "boulder")
	add("phoenix", "phoenix", "arizona", "az")
	add("portland", "portland", "oregon")
	add("miami", "miami", "florida", "fl")
	add("philadelphia", "philadelphia", "philly", "pennsylvania", "pa")
	add("detroit", "detroit", "michigan", "mi")
	add("las_vegas", "las vegas", "vegas", "nevada", "nv")
	add("salt_lake_city", "salt lake city", "slc", "utah", "ut")
	add("minneapolis", "minneapolis", "minnesota", "mn")
	add("nashville", "nashville", "tennessee", "tn")
	add("raleigh", "raleigh", "north carolina", "nc", "charlotte", "durham")
	add("richmond", "richmond", "virginia", "va")
	add("pittsburgh", "pittsburgh")
	add("washington_dc", "washington dc", "dc", "district of columbia")

	// Countries and regions.
	add("united_states", "us", "usa", "united states", "america", "amer", "national us")
	add("canada", "canada", "toronto", "vancouver", "montreal", "ottawa", "calgary")
	add("united_kingdom", "uk", "united kingdom", "england", "great britain")
	add("germany", "germany", "deutschland")
	add("france", "france")
	add("australia", "australia", "sydney", "melbourne")
	add("emea", "emea", "europe", "europe middle east africa")
	add("apac", "apac", "asia pacific", "asia-pacific")
	add("latam", "latam", "latin america")
	add("mena", "mena", "middle east north africa")

	// Europe.
	add("london", "london")
	add("dublin", "dublin", "ireland", "dublin hq")
	add("berlin", "berlin")
	add("paris", "paris")
	add("madrid", "madrid")
	add("barcelona", "barcelona")
	add("amsterdam", "amsterdam", "netherlands", "holland")
	add("zurich", "zurich", "switzerland")
	add("stockholm", "stockholm", "sweden")
	add("oslo", "oslo", "norway")
	add("copenhagen", "copenhagen", "denmark")
	add("helsinki", "helsinki", "finland")
	add("vienna", "vienna", "austria")
	add("warsaw", "warsaw", "poland")
	add("prague", "prague", "czech republic")
	add("budapest", "budapest", "hungary")
	add("lisbon", "lisbon", "portugal")
	add("rome", "rome", "italy")
	add("milan", "milan")
	add("bucharest", "bucharest", "romania")

	// Asia Pacific.
	add("tokyo", "tokyo", "japan")
	add("singapore", "singapore")
	add("bangalore", "bangalore", "bengaluru", "india")
	add("mumbai", "mumbai", "bombay")
	add("delhi", "delhi", "new delhi")
	add("hyderabad", "hyderabad")
	add("pune", "pune")
	add("chennai", "chennai", "madras")
	add("hong_kong", "hong kong", "hk")
	add("seoul", "seoul", "south korea", "korea")
	add("beijing", "beijing", "china")
	add("shanghai", "shanghai")
	add("taipei", "taipei", "taiwan")
	add("bangkok", "bangkok", "thailand")
	add("manila", "manila", "philippines")
	add("jakarta", "jakarta", "indonesia")
	add("kuala_lumpur", "kuala lumpur", "malaysia")

	// Latin America and others.
	add("mexico_city", "mexico city", "mexico", "mx", "cdmx")
	add("sao_paulo", "sao paulo", "brazil")
	add("buenos_aires", "buenos aires", "argentina")
	add("santiago", "santiago", "chile")
	add("bogota", "bogota", "colombia")
	add("tel_aviv", "tel aviv", "israel")

	return t
}

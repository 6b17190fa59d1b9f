package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

type Posting struct {
	ExternalID  string    `json:"external_id"` // source-native id
	OrgSlug     string    `json:"org"`
	Title       string    `json:"title"`
	LocationRaw string    `json:"location"` // as published, possibly multi-valued ("Seattle, US-Remote")
	Department  string    `json:"department,omitempty"`
	JobType     string    `json:"job_type,omitempty"` // Full-time/Part-time/Contract/Intern
	URL         string    `json:"url,omitempty"`
	FirstSeen   time.Time `json:"first_seen,omitzero"`
}

// Fingerprint hashes the matchable content fields. Two postings with the
// same title, location, department and job type share a fingerprint even if
// their source-native ids differ; editing any one field yields a new one.
func (p Posting) Fingerprint() string {
	h := sha256.Sum256([]byte(p.Title + "|" + p.LocationRaw + "|" + p.Department + "|" + p.JobType))
	return hex.EncodeToString(h[:])
}

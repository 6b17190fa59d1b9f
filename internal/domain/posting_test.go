package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintIgnoresExternalID(t *testing.T) {
	a := Posting{ExternalID: "1", Title: "SRE", LocationRaw: "Seattle", Department: "Eng", JobType: "Full-time"}
	b := Posting{ExternalID: "9999", Title: "SRE", LocationRaw: "Seattle", Department: "Eng", JobType: "Full-time"}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintChangesPerField(t *testing.T) {
	base := Posting{Title: "SRE", LocationRaw: "Seattle", Department: "Eng", JobType: "Full-time"}

	variants := []Posting{
		{Title: "Senior SRE", LocationRaw: "Seattle", Department: "Eng", JobType: "Full-time"},
		{Title: "SRE", LocationRaw: "Austin", Department: "Eng", JobType: "Full-time"},
		{Title: "SRE", LocationRaw: "Seattle", Department: "Infra", JobType: "Full-time"},
		{Title: "SRE", LocationRaw: "Seattle", Department: "Eng", JobType: "Contract"},
	}
	for _, v := range variants {
		assert.NotEqual(t, base.Fingerprint(), v.Fingerprint(), "%+v", v)
	}
}

func TestFingerprintFieldShiftIsNotAmbiguous(t *testing.T) {
	// separator keeps "ab"+"c" distinct from "a"+"bc"
	a := Posting{Title: "ab", LocationRaw: "c"}
	b := Posting{Title: "a", LocationRaw: "bc"}
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAndDefaults(t *testing.T) {
	path := writeTemp(t, `
organizations:
  - slug: Stripe
alerts:
  - owner: me
    title_keywords: [engineer]
    endpoint:
      kind: discord
      ref: https://example.com/hook
`)
	raw, err := Load(path)
	require.NoError(t, err)

	cfg, vr := NormalizeAndValidate(raw)
	require.True(t, vr.OK(), "unexpected errors: %v", vr.Errors)

	assert.Equal(t, DefaultPort, cfg.App.Port)
	assert.Equal(t, DefaultIntervalMinutes, cfg.Polling.IntervalMinutes)
	assert.Equal(t, DefaultMaxConcurrent, cfg.Polling.MaxConcurrent)

	require.Len(t, cfg.Organizations, 1)
	o := cfg.Organizations[0]
	assert.Equal(t, "stripe", o.Slug) // lowercased
	assert.Equal(t, "stripe", o.Name)
	assert.Equal(t, "greenhouse", o.SourceType)
	assert.Equal(t, "stripe", o.BoardToken)

	assert.Equal(t, "any", cfg.Alerts[0].KeywordMode)

	pc := cfg.PollConfig()
	assert.Equal(t, 15*60, int(pc.Interval.Seconds()))
	assert.Equal(t, 30, int(pc.RequestTimeout.Seconds()))
}

func TestValidateRejectsBrokenAlerts(t *testing.T) {
	cfg := Config{
		Alerts: []Alert{
			{Owner: "me", TitleKeywords: []string{"x"}, KeywordMode: "sometimes",
				Endpoint: Endpoint{Kind: "discord", Ref: "https://h"}},
			{Owner: "me", TitleKeywords: []string{"x"}, Endpoint: Endpoint{Kind: "pager", Ref: "1"}},
			{Owner: "me", Endpoint: Endpoint{Kind: "discord", Ref: "https://h"}}, // no filters at all
		},
	}
	_, vr := NormalizeAndValidate(cfg)
	require.False(t, vr.OK())
	assert.Len(t, vr.Errors, 3)
}

func TestValidateDuplicateSlugs(t *testing.T) {
	cfg := Config{
		Organizations: []Organization{{Slug: "stripe"}, {Slug: "Stripe"}},
	}
	_, vr := NormalizeAndValidate(cfg)
	require.False(t, vr.OK())
	assert.Contains(t, vr.Errors[0], "duplicate slug")
}

func TestEnsureUserConfigFallsBackToSkeleton(t *testing.T) {
	dataDir := t.TempDir()
	path, err := EnsureUserConfig(dataDir, filepath.Join(dataDir, "no-such-default.yml"))
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.App.Port)

	// second call must not clobber the existing file
	again, err := EnsureUserConfig(dataDir, "still-missing.yml")
	require.NoError(t, err)
	assert.Equal(t, path, again)
}

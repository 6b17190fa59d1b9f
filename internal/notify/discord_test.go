package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func message(endpoint string) Message {
	return Message{
		AlertID:    "a1",
		Title:      "Senior Software Engineer",
		OrgName:    "Stripe",
		Location:   "Seattle, San Francisco, US-Remote",
		Department: "Engineering",
		JobType:    "Full-time",
		URL:        "https://boards.greenhouse.io/stripe/jobs/1",
		Endpoint:   endpoint,
	}
}

func TestDiscordSendPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NewDiscord()
	s.HC = srv.Client()
	require.NoError(t, s.Send(context.Background(), message(srv.URL)))

	assert.Equal(t, "RushJob", got["username"])
	embeds := got["embeds"].([]any)
	require.Len(t, embeds, 1)
	fields := embeds[0].(map[string]any)["fields"].([]any)
	require.Len(t, fields, 1)
	field := fields[0].(map[string]any)
	assert.Contains(t, field["name"], "Senior Software Engineer")
	assert.Contains(t, field["value"], "Stripe")
	assert.Contains(t, field["value"], "🌍") // remote location gets the globe
	assert.Contains(t, field["value"], "Apply Here")
}

func TestDiscordSendBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewDiscord()
	s.HC = srv.Client()
	err := s.Send(context.Background(), message(srv.URL))

	var serr *SendError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "discord", serr.Kind)
}

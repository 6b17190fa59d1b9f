package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const discordGreen = 0x57F287

type DiscordSender struct {
	HC       *http.Client
	Username string
}

func NewDiscord() *DiscordSender {
	return &DiscordSender{
		HC:       &http.Client{Timeout: 30 * time.Second},
		Username: "RushJob",
	}
}

func (s *DiscordSender) Kind() string { return "discord" }

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       int            `json:"color"`
	Timestamp   string         `json:"timestamp"`
	Fields      []discordField `json:"fields"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Send posts one job embed to the alert's webhook. Endpoint is the webhook
// URL.
func (s *DiscordSender) Send(ctx context.Context, msg Message) error {
	locEmoji := "📍"
	if strings.Contains(strings.ToLower(msg.Location), "remote") {
		locEmoji = "🌍"
	}

	var details []string
	details = append(details, "🏢 "+msg.OrgName)
	if msg.Department != "" {
		details = append(details, "📁 "+msg.Department)
	}
	if msg.Location != "" {
		details = append(details, locEmoji+" "+msg.Location)
	}
	if msg.JobType != "" {
		details = append(details, "💼 "+msg.JobType)
	}
	details = append(details, fmt.Sprintf("[**Apply Here**](%s)", msg.URL))

	payload := map[string]any{
		"username": s.Username,
		"embeds": []discordEmbed{{
			Title:       "🚨 New Job Alert",
			Description: "A new job was posted that matches your criteria!",
			Color:       discordGreen,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Fields: []discordField{{
				Name:   "**" + msg.Title + "**",
				Value:  strings.Join(details, "\n"),
				Inline: true,
			}},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return &SendError{Kind: "discord", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, msg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return &SendError{Kind: "discord", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.HC.Do(req)
	if err != nil {
		return &SendError{Kind: "discord", Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &SendError{Kind: "discord", Err: fmt.Errorf("webhook status %d", res.StatusCode)}
	}
	return nil
}

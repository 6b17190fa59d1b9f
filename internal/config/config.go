package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"rushjob-engine/internal/poll"
)

type Organization struct {
	Slug       string `yaml:"slug"`
	Name       string `yaml:"name"`
	SourceType string `yaml:"source_type"`
	BoardToken string `yaml:"board_token"`
	Active     *bool  `yaml:"active"` // nil means active
}

type Endpoint struct {
	Kind string `yaml:"kind"` // discord | telegram
	Ref  string `yaml:"ref"`  // webhook URL or chat id
}

type Alert struct {
	ID              string   `yaml:"id"`
	Owner           string   `yaml:"owner"`
	Orgs            []string `yaml:"orgs"`
	TitleKeywords   []string `yaml:"title_keywords"`
	ExcludeKeywords []string `yaml:"exclude_keywords"`
	KeywordMode     string   `yaml:"keyword_mode"` // any | all
	Locations       []string `yaml:"locations"`
	Department      string   `yaml:"department"`
	JobType         string   `yaml:"job_type"`
	Endpoint        Endpoint `yaml:"endpoint"`
	Active          *bool    `yaml:"active"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Polling struct {
		IntervalMinutes       int `yaml:"interval_minutes"`
		MaxConcurrent         int `yaml:"max_concurrent"`
		RatePerMinute         int `yaml:"rate_per_minute"`
		RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
		MaxRetries            int `yaml:"max_retries"`
		BackoffBaseSeconds    int `yaml:"backoff_base_seconds"`
		BackoffCapSeconds     int `yaml:"backoff_cap_seconds"`
	} `yaml:"polling"`

	Notify struct {
		DiscordUsername string `yaml:"discord_username"`
		Telegram        struct {
			Enabled bool `yaml:"enabled"`
		} `yaml:"telegram"`
	} `yaml:"notify"`

	Organizations []Organization `yaml:"organizations"`
	Alerts        []Alert        `yaml:"alerts"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// PollConfig translates the yaml numbers into the poller's native units.
// Call after NormalizeAndValidate so the defaults are already filled in.
func (c Config) PollConfig() poll.Config {
	return poll.Config{
		Interval:       time.Duration(c.Polling.IntervalMinutes) * time.Minute,
		MaxConcurrent:  c.Polling.MaxConcurrent,
		RatePerMinute:  c.Polling.RatePerMinute,
		RequestTimeout: time.Duration(c.Polling.RequestTimeoutSeconds) * time.Second,
		MaxRetries:     c.Polling.MaxRetries,
		BackoffBase:    time.Duration(c.Polling.BackoffBaseSeconds) * time.Second,
		BackoffCap:     time.Duration(c.Polling.BackoffCapSeconds) * time.Second,
	}
}

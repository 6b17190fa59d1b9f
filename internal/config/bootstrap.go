package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// Written on first run when no packaged default config exists either.
const defaultConfigYAML = `app:
  port: 8090

polling:
  interval_minutes: 15
  max_concurrent: 5
  rate_per_minute: 60
  request_timeout_seconds: 30
  max_retries: 3
  backoff_base_seconds: 5
  backoff_cap_seconds: 60

organizations: []
alerts: []
`

// EnsureUserConfig makes sure <dataDir>/config.yml exists, seeding it from
// defaultPath (or a built-in skeleton) on first run, and returns its path.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if werr := os.WriteFile(userPath, []byte(defaultConfigYAML), 0o644); werr != nil {
				return "", werr
			}
			return userPath, nil
		}
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}

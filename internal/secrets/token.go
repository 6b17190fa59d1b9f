package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Groups the app's secrets in the OS keychain.
	KeyringService = "rushjob"

	TelegramAccount = "telegram-bot-token"
	telegramEnv     = "RUSHJOB_TELEGRAM_TOKEN"
)

// GetTelegramToken looks in the OS keychain first, then the environment.
// Headless hosts without a keyring daemon fall through to the env var.
func GetTelegramToken() (string, error) {
	tok, err := keyring.Get(KeyringService, TelegramAccount)
	if err == nil && strings.TrimSpace(tok) != "" {
		return tok, nil
	}

	if tok := strings.TrimSpace(os.Getenv(telegramEnv)); tok != "" {
		return tok, nil
	}
	return "", errors.New("telegram bot token not found (set it in the keychain or " + telegramEnv + ")")
}

func SetTelegramToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, TelegramAccount, token)
}

func DeleteTelegramToken() error {
	return keyring.Delete(KeyringService, TelegramAccount)
}

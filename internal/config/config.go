package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL     = "https://link.springer.com/"
	DefaultDownloadDir = "downloads"

	// DefaultQuerySuffix selects the English Computer Science textbooks of the COVID-19 free package.
	DefaultQuerySuffix = "?facet-content-type=%22Book%22&package=mat-covid19_textbooks" +
		"&facet-language=%22En%22&facet-discipline=%22Computer+Science%22"
)

// Config holds every setting of a download run.
type Config struct {
	BaseURL        string
	QuerySuffix    string
	DownloadDir    string
	ProxyAddr      string
	TelegramToken  string
	TelegramChatID int64
	LogLevel       string

	// TelegramEndpoint is a Bot API URL format (token, method); empty means api.telegram.org.
	TelegramEndpoint string
}

func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// Load reads .env (if present) and the process environment.
// envLoaded reports whether a .env file was found.
func Load() (cfg *Config, envLoaded bool, err error) {
	envLoaded = godotenv.Load() == nil

	cfg = &Config{
		BaseURL:       NormalizeBaseURL(withDefault(os.Getenv("SPRINGER_BASE_URL"), DefaultBaseURL)),
		QuerySuffix:   withDefault(os.Getenv("SPRINGER_QUERY_SUFFIX"), DefaultQuerySuffix),
		DownloadDir:   withDefault(os.Getenv("DOWNLOAD_DIR"), DefaultDownloadDir),
		ProxyAddr:     strings.TrimSpace(os.Getenv("PROXY_ADDR")),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		LogLevel:      withDefault(os.Getenv("LOG_LEVEL"), "info"),

		TelegramEndpoint: strings.TrimSpace(os.Getenv("TELEGRAM_API_ENDPOINT")),
	}

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, envLoaded, fmt.Errorf("TELEGRAM_CHAT_ID %q is not a number: %w", raw, err)
		}
		cfg.TelegramChatID = id
	}

	return cfg, envLoaded, nil
}

// NormalizeBaseURL makes sure the base URL ends with a slash.
func NormalizeBaseURL(base string) string {
	base = strings.TrimSpace(base)
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

func withDefault(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

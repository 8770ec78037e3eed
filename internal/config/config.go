// ABOUTME: Configuration loader for the CampusBot client
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultLoginURL is where users are sent to authenticate when no
// provider URL is configured.
const DefaultLoginURL = "https://auth.emergentagent.com/"

type Config struct {
	APIURL         string // backend base URL
	LoginURL       string // identity provider login page
	ConfigDir      string // debug log location
	RequestTimeout int    // seconds, applied to the HTTP client
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present but never required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:         ensureScheme(getEnv("CAMPUSBOT_API_URL", "http://localhost:8000")),
		LoginURL:       getEnv("CAMPUSBOT_LOGIN_URL", DefaultLoginURL),
		ConfigDir:      getEnv("CAMPUSBOT_CONFIG_DIR", defaultConfigDir()),
		RequestTimeout: getEnvInt("CAMPUSBOT_TIMEOUT", 30),
	}

	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("CAMPUSBOT_TIMEOUT must be positive, got %d", cfg.RequestTimeout)
	}

	return cfg, nil
}

// defaultConfigDir returns the config directory following XDG spec
func defaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "campusbot")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "campusbot")
}

// ensureScheme prepends https:// when a URL is missing a scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "https://" + url
	}
	return url
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// ABOUTME: Root command for the campusbot CLI
// ABOUTME: Handles global flags and launches the interactive chat client

package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"campusbot/internal/client"
	"campusbot/internal/config"
	"campusbot/internal/tui"
)

var (
	apiURL     string
	authURL    string
	jsonOutput bool
)

// rootCmd is the base command; running it bare starts the interactive client
var rootCmd = &cobra.Command{
	Use:   "campusbot",
	Short: "Interactive client for the CampusBot campus assistant",
	Long: `campusbot is an interactive terminal client for the CampusBot backend.

Sign in once via your campus identity provider, then ask questions about
courses, departments, faculty, events and locations. Administrators can
curate the knowledge base from the built-in dashboard.

Environment Variables:
  CAMPUSBOT_API_URL    Backend API URL (default: http://localhost:8000)
  CAMPUSBOT_LOGIN_URL  Identity provider login page
  CAMPUSBOT_TIMEOUT    Request timeout in seconds (default: 30)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return tui.Run(cfg, newClient(cfg), authURL)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides CAMPUSBOT_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.Flags().StringVar(&authURL, "auth-url", "", "Identity provider redirect URL carrying the sign-in token")
}

// loadConfig merges the environment config with command-line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	return cfg, nil
}

// newClient builds the API client from the resolved config
func newClient(cfg *config.Config) *client.Client {
	return client.NewWithTimeout(cfg.APIURL, requestTimeout(cfg))
}

// requestTimeout converts the configured timeout seconds to a duration
func requestTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.RequestTimeout) * time.Second
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("CAMPUSBOT_API_URL"); envURL != "" {
		return envURL
	}
	return "http://localhost:8000"
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

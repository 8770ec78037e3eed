// ABOUTME: Whoami command for the campusbot CLI
// ABOUTME: Probes the backend session and prints the signed-in identity

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"campusbot/internal/client"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently signed-in identity",
	Long:  `Probe the backend for the current session and display the signed-in user, or report that no session exists.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami probes the session and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	c := newClient(cfg)

	identity, err := c.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, client.ErrNotAuthenticated) {
			fmt.Fprintln(w, "Not signed in.")
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatIdentityJSON(identity))
	} else {
		fmt.Fprintln(w, formatIdentityHuman(identity))
	}
	return 0
}

// formatIdentityHuman formats the identity for human readability
func formatIdentityHuman(identity *client.Identity) string {
	role := "standard"
	if identity.IsAdmin {
		role = "admin"
	}
	return fmt.Sprintf(`Name:  %s
Email: %s
Role:  %s`,
		identity.Name, identity.Email, role)
}

// formatIdentityJSON formats the identity as JSON
func formatIdentityJSON(identity *client.Identity) string {
	data, _ := json.MarshalIndent(identity, "", "  ")
	return string(data)
}

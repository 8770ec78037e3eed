// ABOUTME: Logout command for the campusbot CLI
// ABOUTME: Revokes the backend session and reports the result

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of the backend",
	Long:  `Revoke the current backend session. The local client always forgets its credentials, even when the backend call fails.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogout(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout revokes the session and returns exit code
func runLogout(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	c := newClient(cfg)

	if err := c.Logout(ctx); err != nil {
		fmt.Fprintf(w, "Warning: backend logout failed: %v\n", err)
		fmt.Fprintln(w, "Local session cleared anyway.")
		return 0
	}

	fmt.Fprintln(w, "Signed out.")
	return 0
}

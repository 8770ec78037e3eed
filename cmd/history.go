// ABOUTME: History command for the campusbot CLI
// ABOUTME: Prints the signed-in user's past queries and answers

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"campusbot/internal/client"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your past questions and answers",
	Long:  `Fetch the signed-in user's conversation history from the backend and print it, newest first.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHistory(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

// runHistory fetches and prints the query history, returning exit code
func runHistory(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	c := newClient(cfg)

	entries, err := c.History(ctx)
	if err != nil {
		if errors.Is(err, client.ErrNotAuthenticated) {
			fmt.Fprintln(w, "Not signed in.")
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHistoryJSON(entries))
	} else {
		fmt.Fprintln(w, formatHistoryHuman(entries))
	}
	return 0
}

// formatHistoryHuman formats history entries for human readability
func formatHistoryHuman(entries []client.HistoryEntry) string {
	if len(entries) == 0 {
		return "No past questions yet."
	}

	var sb strings.Builder
	for i, entry := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("[%s]\n", entry.Timestamp))
		sb.WriteString(fmt.Sprintf("Q: %s\n", entry.Query))
		sb.WriteString(fmt.Sprintf("A: %s\n", entry.Response))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatHistoryJSON formats history entries as JSON
func formatHistoryJSON(entries []client.HistoryEntry) string {
	data, _ := json.MarshalIndent(entries, "", "  ")
	return string(data)
}

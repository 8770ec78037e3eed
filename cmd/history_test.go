// ABOUTME: Tests for the history command
// ABOUTME: Verifies history output formatting and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campusbot/internal/client"
)

func TestFormatHistoryHuman(t *testing.T) {
	entries := []client.HistoryEntry{
		{Query: "Where is the library?", Response: "Second floor, main building.", Timestamp: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
		{Query: "When does registration open?", Response: "September 1st.", Timestamp: time.Date(2026, 8, 2, 11, 0, 0, 0, time.UTC)},
	}

	output := formatHistoryHuman(entries)

	checks := []string{
		"Where is the library?",
		"Second floor, main building.",
		"When does registration open?",
		"2026-08-01T10:00:00Z",
	}
	for _, check := range checks {
		if !bytes.Contains([]byte(output), []byte(check)) {
			t.Errorf("expected output to contain '%s'", check)
		}
	}
}

func TestFormatHistoryHuman_Empty(t *testing.T) {
	output := formatHistoryHuman(nil)

	if !bytes.Contains([]byte(output), []byte("No past questions")) {
		t.Error("expected empty-history message")
	}
}

func TestFormatHistoryJSON(t *testing.T) {
	entries := []client.HistoryEntry{
		{Query: "Where is the library?", Response: "Second floor."},
	}

	output := formatHistoryJSON(entries)

	var parsed []map[string]interface{}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(parsed) != 1 || parsed[0]["query"] != "Where is the library?" {
		t.Errorf("unexpected parsed JSON: %v", parsed)
	}
}

func TestHistoryCommand_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]client.HistoryEntry{
			{ID: "q-1", Query: "Where is the gym?", Response: "Sports complex, east wing."},
		})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runHistory(context.Background(), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Where is the gym?")) {
		t.Error("expected query text in output")
	}
}

func TestHistoryCommand_NotSignedIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runHistory(context.Background(), &buf)

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
}

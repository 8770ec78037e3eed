// ABOUTME: Tests for the whoami command
// ABOUTME: Verifies identity output formatting and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campusbot/internal/client"
)

func TestFormatIdentityHuman(t *testing.T) {
	identity := &client.Identity{
		Name:    "Ada Lovelace",
		Email:   "ada@campus.edu",
		IsAdmin: true,
	}

	output := formatIdentityHuman(identity)

	checks := []string{"Ada Lovelace", "ada@campus.edu", "admin"}
	for _, check := range checks {
		if !bytes.Contains([]byte(output), []byte(check)) {
			t.Errorf("expected output to contain '%s'", check)
		}
	}
}

func TestFormatIdentityHuman_StandardRole(t *testing.T) {
	identity := &client.Identity{Name: "Bob", Email: "bob@campus.edu"}

	output := formatIdentityHuman(identity)

	if !bytes.Contains([]byte(output), []byte("standard")) {
		t.Error("expected standard role in output")
	}
}

func TestFormatIdentityJSON(t *testing.T) {
	identity := &client.Identity{Name: "Ada", Email: "ada@campus.edu"}

	output := formatIdentityJSON(identity)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["email"] != "ada@campus.edu" {
		t.Errorf("expected email in JSON, got %v", parsed["email"])
	}
}

func TestWhoamiCommand_SignedIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.Identity{
			ID:    "user-1",
			Name:  "Ada Lovelace",
			Email: "ada@campus.edu",
		})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runWhoami(context.Background(), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Ada Lovelace")) {
		t.Error("expected user name in output")
	}
}

func TestWhoamiCommand_NotSignedIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runWhoami(context.Background(), &buf)

	if exitCode != 1 {
		t.Errorf("expected exit code 1 for no session, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Not signed in")) {
		t.Error("expected not-signed-in message in output")
	}
}

func TestWhoamiCommand_ConnectionError(t *testing.T) {
	apiURL = "http://localhost:1"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runWhoami(context.Background(), &buf)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}

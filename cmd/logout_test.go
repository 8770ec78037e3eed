// ABOUTME: Tests for the logout command
// ABOUTME: Verifies session revocation reporting and exit codes

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogoutCommand_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/logout" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runLogout(context.Background(), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Signed out")) {
		t.Error("expected sign-out confirmation in output")
	}
}

func TestLogoutCommand_BackendFailure(t *testing.T) {
	apiURL = "http://localhost:1"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runLogout(context.Background(), &buf)

	// Local credentials are always cleared; a backend failure is a warning.
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Local session cleared")) {
		t.Error("expected local-clear message in output")
	}
}

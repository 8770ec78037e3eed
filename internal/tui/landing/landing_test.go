// ABOUTME: Tests for the landing screen
// ABOUTME: Verifies redirect submission, cancellation, and error display

package landing

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLanding_SubmitEmitsRedirectURL(t *testing.T) {
	l := New("https://auth.example.com/")
	l.input.SetValue("  https://app.campus.edu/chat?session_id=tok-1  ")

	_, cmd := l.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected command from submission")
	}

	msg, ok := cmd().(RedirectSubmittedMsg)
	if !ok {
		t.Fatalf("expected RedirectSubmittedMsg, got %T", cmd())
	}
	if msg.RawURL != "https://app.campus.edu/chat?session_id=tok-1" {
		t.Errorf("expected trimmed URL, got %q", msg.RawURL)
	}
}

func TestLanding_EmptySubmitIgnored(t *testing.T) {
	l := New("https://auth.example.com/")
	l.input.SetValue("   ")

	_, cmd := l.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("expected blank submission ignored")
	}
}

func TestLanding_SubmitClearsError(t *testing.T) {
	l := New("https://auth.example.com/")
	l.SetError("Sign-in failed. Please try again.")
	l.input.SetValue("https://app.campus.edu/chat?session_id=tok-2")

	l.Update(keyMsg("enter"))
	if l.errText != "" {
		t.Error("expected previous error cleared on resubmission")
	}
}

func TestLanding_EscCancels(t *testing.T) {
	l := New("https://auth.example.com/")

	_, cmd := l.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("expected command from esc")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Fatalf("expected CancelledMsg, got %T", cmd())
	}
}

func TestLanding_ViewShowsLoginURLAndError(t *testing.T) {
	l := New("https://auth.example.com/")
	l.SetError("No sign-in token found in that URL.")

	view := l.View()
	if !strings.Contains(view, "https://auth.example.com/") {
		t.Error("expected provider URL in the sign-in instructions")
	}
	if !strings.Contains(view, "No sign-in token found") {
		t.Error("expected error text rendered")
	}
}

// ABOUTME: Unauthenticated landing screen with the provider sign-in flow
// ABOUTME: Accepts the pasted redirect URL carrying the one-time handoff token

package landing

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"campusbot/internal/tui/icons"
	"campusbot/internal/tui/styles"
)

// RedirectSubmittedMsg is sent when the user pastes the provider
// redirect URL and confirms.
type RedirectSubmittedMsg struct {
	RawURL string
}

// CancelledMsg is sent when the user quits from the landing screen.
type CancelledMsg struct{}

// Landing is the unauthenticated landing screen.
type Landing struct {
	loginURL string
	input    textinput.Model
	errText  string
	width    int
}

// New creates the landing screen pointing at the provider login page.
func New(loginURL string) *Landing {
	ti := textinput.New()
	ti.Placeholder = "paste the redirect URL here after signing in"
	ti.CharLimit = 2048
	ti.Width = 60
	ti.Focus()

	return &Landing{
		loginURL: loginURL,
		input:    ti,
	}
}

// SetError displays a sign-in failure under the input.
func (l *Landing) SetError(text string) {
	l.errText = text
}

// Init implements the child-model contract.
func (l *Landing) Init() tea.Cmd {
	return nil
}

// Update implements the child-model contract.
func (l *Landing) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
		return l, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			raw := strings.TrimSpace(l.input.Value())
			if raw == "" {
				return l, nil
			}
			l.errText = ""
			return l, func() tea.Msg {
				return RedirectSubmittedMsg{RawURL: raw}
			}
		case "esc", "ctrl+c":
			return l, func() tea.Msg {
				return CancelledMsg{}
			}
		}
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

// View renders the landing screen.
func (l *Landing) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.App.String() + " Welcome to CampusBot"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Your campus assistant for courses, departments, faculty, events and locations."))
	sb.WriteString("\n\n")

	sb.WriteString("Sign in with your campus account:\n\n")
	sb.WriteString("  1. Open " + styles.KeyStyle.Render(l.loginURL) + " in your browser\n")
	sb.WriteString("  2. Complete the sign-in\n")
	sb.WriteString("  3. Paste the URL you were redirected to below\n\n")

	sb.WriteString(l.input.View())
	sb.WriteString("\n")

	if l.errText != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusCritical.Render(icons.Critical.String() + " " + l.errText))
		sb.WriteString("\n")
	}

	sb.WriteString(styles.Help.Render("enter submit · esc quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

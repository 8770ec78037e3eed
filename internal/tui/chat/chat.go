// ABOUTME: Conversation screen with transcript viewport and query input
// ABOUTME: Input is disabled while a query is in flight; history shows in a sidebar

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"campusbot/internal/client"
	"campusbot/internal/conversation"
	"campusbot/internal/tui/icons"
	"campusbot/internal/tui/styles"
)

// QuerySubmittedMsg is sent when the user submits a query.
type QuerySubmittedMsg struct {
	Text string
}

// LogoutRequestedMsg is sent when the user asks to sign out.
type LogoutRequestedMsg struct{}

// AdminRequestedMsg is sent when the user asks for the admin dashboard.
type AdminRequestedMsg struct{}

// Layout constants
const (
	sidebarWidth = 36
	minChatWidth = 40
	chromeHeight = 6 // input row, separators, padding
)

// Chat is the conversation screen.
type Chat struct {
	input       textinput.Model
	transcript  viewport.Model
	spin        spinner.Model
	messages    []conversation.Message
	history     []client.HistoryEntry
	showHistory bool
	busy        bool
	userName    string
	isAdmin     bool
	width       int
	height      int
}

// New creates the chat screen for the signed-in identity.
func New(userName string, isAdmin bool) *Chat {
	ti := textinput.New()
	ti.Placeholder = "Ask anything about campus..."
	ti.CharLimit = 1024
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Chat{
		input:      ti,
		transcript: viewport.New(80, 20),
		spin:       sp,
		userName:   userName,
		isAdmin:    isAdmin,
	}
}

// SetSize adjusts the layout to the terminal dimensions.
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.transcript.Width = c.transcriptWidth()
	c.transcript.Height = max(1, height-chromeHeight)
	c.input.Width = max(20, c.transcriptWidth()-4)
	c.renderTranscript()
}

// SetMessages replaces the rendered transcript.
func (c *Chat) SetMessages(messages []conversation.Message, busy bool) {
	c.messages = messages
	c.busy = busy
	c.renderTranscript()
	c.transcript.GotoBottom()
}

// SetHistory replaces the sidebar history list.
func (c *Chat) SetHistory(entries []client.HistoryEntry) {
	c.history = entries
}

// Busy reports whether the input is currently disabled.
func (c *Chat) Busy() bool {
	return c.busy
}

// Init starts the spinner ticking.
func (c *Chat) Init() tea.Cmd {
	return c.spin.Tick
}

// Update implements the child-model contract.
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.SetSize(msg.Width, msg.Height)
		return c, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		c.spin, cmd = c.spin.Update(msg)
		return c, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			// Submission is excluded, not queued, while a query is
			// outstanding.
			if c.busy {
				return c, nil
			}
			text := c.input.Value()
			if strings.TrimSpace(text) == "" {
				return c, nil
			}
			c.input.Reset()
			return c, func() tea.Msg {
				return QuerySubmittedMsg{Text: text}
			}
		case "ctrl+h":
			c.showHistory = !c.showHistory
			c.transcript.Width = c.transcriptWidth()
			c.renderTranscript()
			return c, nil
		case "ctrl+l":
			return c, func() tea.Msg {
				return LogoutRequestedMsg{}
			}
		case "ctrl+a":
			if c.isAdmin {
				return c, func() tea.Msg {
					return AdminRequestedMsg{}
				}
			}
			return c, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			c.transcript, cmd = c.transcript.Update(msg)
			return c, cmd
		}
	}

	if c.busy {
		return c, nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// View renders the chat screen.
func (c *Chat) View() string {
	left := c.viewConversation()
	if !c.showHistory {
		return left
	}
	right := styles.Panel.Width(sidebarWidth - 4).Render(c.viewHistory())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (c *Chat) viewConversation() string {
	var sb strings.Builder

	sb.WriteString(c.transcript.View())
	sb.WriteString("\n")

	if c.busy {
		sb.WriteString(c.spin.View() + " thinking...")
	} else {
		sb.WriteString(icons.Send.String() + " " + c.input.View())
	}
	sb.WriteString("\n")

	return sb.String()
}

func (c *Chat) viewHistory() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.History.String() + " Your history"))
	sb.WriteString("\n")

	if len(c.history) == 0 {
		sb.WriteString(styles.Subtitle.Render("No past questions yet."))
		return sb.String()
	}

	limit := len(c.history)
	maxRows := max(1, (c.height-chromeHeight)/3)
	if limit > maxRows {
		limit = maxRows
	}
	for _, entry := range c.history[:limit] {
		sb.WriteString(styles.ValueStyle.Render(truncate(entry.Query, sidebarWidth-8)))
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render(truncate(entry.Response, sidebarWidth-8)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderTranscript rebuilds the viewport content from the message list
func (c *Chat) renderTranscript() {
	width := c.transcript.Width
	if width <= 0 {
		width = 80
	}
	bubbleWidth := max(20, width*4/5)

	var sb strings.Builder
	for _, msg := range c.messages {
		var rendered string
		if msg.Origin == conversation.OriginUser {
			bubble := styles.UserMessage.Width(min(bubbleWidth, lipgloss.Width(msg.Text)+2)).Render(msg.Text)
			rendered = lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(bubble)
		} else {
			rendered = styles.AssistantMessage.MaxWidth(bubbleWidth).Render(msg.Text)
		}
		sb.WriteString(rendered)
		sb.WriteString("\n\n")
	}
	c.transcript.SetContent(sb.String())
}

func (c *Chat) transcriptWidth() int {
	if c.showHistory && c.width > minChatWidth+sidebarWidth {
		return c.width - sidebarWidth
	}
	return max(minChatWidth, c.width)
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if n <= 3 || len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ABOUTME: Root bubbletea model for the CampusBot application
// ABOUTME: Resolves the session, then routes between landing, chat and admin screens

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"campusbot/internal/auth"
	"campusbot/internal/client"
	"campusbot/internal/config"
	"campusbot/internal/conversation"
	"campusbot/internal/history"
	"campusbot/internal/tui/admin"
	"campusbot/internal/tui/chat"
	"campusbot/internal/tui/debuglog"
	"campusbot/internal/tui/icons"
	"campusbot/internal/tui/landing"
	"campusbot/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenResolving Screen = iota
	ScreenLanding
	ScreenChat
	ScreenAdmin
)

// Layout constants
const (
	minTerminalWidth = 80
	noticeDuration   = 4 * time.Second
)

// sessionResolvedMsg carries the startup resolution outcome
type sessionResolvedMsg struct {
	res auth.Resolution
}

// exchangeFinishedMsg carries the outcome of a landing-screen token exchange
type exchangeFinishedMsg struct {
	identity *client.Identity
	err      error
}

// queryAnsweredMsg carries the outcome of one query exchange
type queryAnsweredMsg struct {
	result *client.QueryResult
	err    error
}

// historyLoadedMsg carries one history fetch result
type historyLoadedMsg struct {
	gen     uint64
	entries []client.HistoryEntry
	err     error
}

// loggedOutMsg is sent when the backend logout call returns
type loggedOutMsg struct {
	err error
}

// adminDataMsg carries the admin dashboard's entity lists
type adminDataMsg struct {
	data admin.Data
	err  error
}

// crudDoneMsg is sent when an admin save or delete returns
type crudDoneMsg struct {
	err error
	// save carries the attempted change so the form can reopen for
	// correction on failure
	save *admin.SaveMsg
}

// clearNoticeMsg expires the transient notice line
type clearNoticeMsg struct {
	seq int
}

// App is the root model for the TUI
type App struct {
	cfg        *config.Config
	client     *client.Client
	gate       *auth.Gate
	resolver   *auth.Resolver
	controller *conversation.Controller
	loader     *history.Loader

	screen Screen
	width  int
	height int

	// redirectURL optionally carries the provider redirect (with the
	// handoff token) straight from the command line
	redirectURL string

	notice    string
	noticeSeq int

	resolveSpin spinner.Model
	landingView *landing.Landing
	chatView    *chat.Chat
	adminView   *admin.Admin
}

// New creates the root application model.
func New(cfg *config.Config, apiClient *client.Client, redirectURL string) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &App{
		cfg:         cfg,
		client:      apiClient,
		gate:        auth.NewGate(),
		resolver:    auth.NewResolver(apiClient),
		loader:      history.NewLoader(apiClient),
		screen:      ScreenResolving,
		redirectURL: redirectURL,
		resolveSpin: sp,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.resolveSpin.Tick, a.resolveSession())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.chatView != nil {
			a.chatView.SetSize(a.contentWidth(), a.contentHeight())
		}
		if a.adminView != nil {
			a.adminView.SetSize(a.contentWidth(), a.contentHeight())
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.routeKey(msg)

	case spinner.TickMsg:
		if a.screen == ScreenResolving {
			var cmd tea.Cmd
			a.resolveSpin, cmd = a.resolveSpin.Update(msg)
			return a, cmd
		}
		return a.forwardToChat(msg)

	case sessionResolvedMsg:
		return a.handleSessionResolved(msg)

	case exchangeFinishedMsg:
		return a.handleExchangeFinished(msg)

	case landing.RedirectSubmittedMsg:
		return a.handleRedirectSubmitted(msg)

	case landing.CancelledMsg:
		return a, tea.Quit

	case chat.QuerySubmittedMsg:
		return a.handleQuerySubmitted(msg)

	case chat.LogoutRequestedMsg:
		return a, a.logout()

	case chat.AdminRequestedMsg:
		return a.enterAdmin()

	case queryAnsweredMsg:
		return a.handleQueryAnswered(msg)

	case historyLoadedMsg:
		return a.handleHistoryLoaded(msg)

	case loggedOutMsg:
		return a.handleLoggedOut(msg)

	case admin.BackMsg:
		a.screen = ScreenChat
		a.adminView = nil
		return a, nil

	case admin.ReloadRequestedMsg:
		return a, a.loadAdminData()

	case admin.SaveMsg:
		return a, a.saveEntity(msg)

	case admin.DeleteMsg:
		return a, a.deleteEntity(msg)

	case admin.PromoteMsg:
		return a, a.promoteUser(msg)

	case adminDataMsg:
		return a.handleAdminData(msg)

	case crudDoneMsg:
		return a.handleCrudDone(msg)

	case clearNoticeMsg:
		if msg.seq == a.noticeSeq {
			a.notice = ""
		}
		return a, nil

	default:
		// huh form internals need every message while a form is open
		if a.screen == ScreenAdmin && a.adminView != nil && a.adminView.Editing() {
			return a.forwardToAdmin(msg)
		}
	}

	return a, nil
}

// routeKey forwards keyboard input to the active screen
func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenLanding:
		if a.landingView == nil {
			return a, nil
		}
		model, cmd := a.landingView.Update(msg)
		a.landingView = model.(*landing.Landing)
		return a, cmd
	case ScreenChat:
		return a.forwardToChat(msg)
	case ScreenAdmin:
		return a.forwardToAdmin(msg)
	}
	return a, nil
}

func (a *App) forwardToChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.chatView == nil {
		return a, nil
	}
	model, cmd := a.chatView.Update(msg)
	a.chatView = model.(*chat.Chat)
	return a, cmd
}

func (a *App) forwardToAdmin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.adminView == nil {
		return a, nil
	}
	model, cmd := a.adminView.Update(msg)
	a.adminView = model.(*admin.Admin)
	return a, cmd
}

// handleSessionResolved applies the startup resolution exactly once
func (a *App) handleSessionResolved(msg sessionResolvedMsg) (tea.Model, tea.Cmd) {
	if msg.res.Err != nil {
		debuglog.Error("session resolution", msg.res.Err)
	}

	if msg.res.Identity == nil {
		if err := a.gate.ResolveAnonymous(); err != nil {
			debuglog.Error("gate", err)
		}
		a.enterLanding()
		if msg.res.Err != nil {
			a.landingView.SetError("Sign-in failed. Please try again.")
		}
		return a, nil
	}

	if err := a.gate.ResolveIdentity(msg.res.Identity); err != nil {
		debuglog.Error("gate", err)
		return a, nil
	}
	return a, a.enterChat()
}

// handleRedirectSubmitted extracts the handoff token from a pasted
// redirect URL and runs the one-time exchange
func (a *App) handleRedirectSubmitted(msg landing.RedirectSubmittedMsg) (tea.Model, tea.Cmd) {
	token, _, err := auth.ExtractHandoffToken(msg.RawURL)
	if err != nil || token == "" {
		a.landingView.SetError("No sign-in token found in that URL.")
		return a, nil
	}
	return a, func() tea.Msg {
		identity, err := a.client.CreateSession(context.Background(), token)
		return exchangeFinishedMsg{identity: identity, err: err}
	}
}

func (a *App) handleExchangeFinished(msg exchangeFinishedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("token exchange", msg.err)
		if a.landingView != nil {
			a.landingView.SetError("Sign-in failed. Please try again.")
		}
		return a, nil
	}
	if err := a.gate.SignIn(msg.identity); err != nil {
		debuglog.Error("gate", err)
		return a, nil
	}
	return a, a.enterChat()
}

// enterLanding switches to a fresh landing screen
func (a *App) enterLanding() {
	a.landingView = landing.New(a.cfg.LoginURL)
	a.screen = ScreenLanding
}

// enterChat builds the conversation state for the resolved identity
func (a *App) enterChat() tea.Cmd {
	identity := a.gate.Identity()
	a.controller = conversation.New(identity.Name)
	a.chatView = chat.New(identity.Name, identity.IsAdmin)
	a.chatView.SetSize(a.contentWidth(), a.contentHeight())
	a.chatView.SetMessages(a.controller.Messages(), false)
	a.screen = ScreenChat
	return tea.Batch(a.chatView.Init(), a.fetchHistory())
}

// enterAdmin routes an admin request through the gate
func (a *App) enterAdmin() (tea.Model, tea.Cmd) {
	if a.gate.RouteFor(auth.ViewAdmin) != auth.ViewAdmin {
		return a, nil
	}
	a.adminView = admin.New()
	a.adminView.SetSize(a.contentWidth(), a.contentHeight())
	a.screen = ScreenAdmin
	return a, a.loadAdminData()
}

// handleQuerySubmitted runs the two-phase exchange: optimistic append,
// then the network round-trip
func (a *App) handleQuerySubmitted(msg chat.QuerySubmittedMsg) (tea.Model, tea.Cmd) {
	if a.controller == nil {
		return a, nil
	}
	if _, err := a.controller.Begin(msg.Text); err != nil {
		// Blank input and busy exclusion have no observable effect.
		return a, nil
	}
	a.chatView.SetMessages(a.controller.Messages(), true)
	return a, a.submitQuery(msg.Text)
}

func (a *App) handleQueryAnswered(msg queryAnsweredMsg) (tea.Model, tea.Cmd) {
	if a.controller == nil {
		return a, nil
	}
	var cmd tea.Cmd
	if msg.err != nil {
		debuglog.Error("query exchange", msg.err)
		if _, err := a.controller.CompleteFailure(); err != nil {
			debuglog.Error("conversation", err)
		}
		cmd = a.showNotice("Failed to get response. Please try again.")
	} else {
		if _, err := a.controller.CompleteSuccess(msg.result); err != nil {
			debuglog.Error("conversation", err)
		}
		cmd = a.fetchHistory()
	}
	a.chatView.SetMessages(a.controller.Messages(), a.controller.Busy())
	return a, cmd
}

func (a *App) handleHistoryLoaded(msg historyLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("history fetch", msg.err)
		return a, a.showNotice("Couldn't refresh your history.")
	}
	if a.loader.Apply(msg.gen, msg.entries) && a.chatView != nil {
		a.chatView.SetHistory(a.loader.Entries())
	}
	return a, nil
}

// handleLoggedOut clears local identity state even when the backend
// call failed, so the user is never stuck looking signed in
func (a *App) handleLoggedOut(msg loggedOutMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("logout", msg.err)
	}
	a.gate.Logout()
	a.controller = nil
	a.chatView = nil
	a.adminView = nil
	a.loader.Reset()
	a.enterLanding()
	return a, nil
}

func (a *App) handleAdminData(msg adminDataMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("admin load", msg.err)
		return a, a.showNotice("Couldn't load admin data.")
	}
	if a.adminView != nil {
		a.adminView.SetData(msg.data)
	}
	return a, nil
}

func (a *App) handleCrudDone(msg crudDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("admin save", msg.err)
		cmds := []tea.Cmd{a.showNotice("Change failed: " + msg.err.Error())}
		if msg.save != nil && a.adminView != nil {
			// Reopen the form with the attempted values so the admin
			// can correct and resubmit.
			cmds = append(cmds, a.adminView.Reopen(msg.save.Kind, msg.save.ID, msg.save.Entity))
		}
		return a, tea.Batch(cmds...)
	}
	return a, a.loadAdminData()
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenResolving:
		content = a.resolveSpin.View() + " Loading..."
	case ScreenLanding:
		if a.landingView != nil {
			content = a.landingView.View()
		}
	case ScreenChat:
		if a.chatView != nil {
			content = a.chatView.View()
		}
	case ScreenAdmin:
		if a.adminView != nil {
			content = a.adminView.View()
		}
	}

	return a.wrapWithFrame(content)
}

func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth
	}
	return a.width
}

func (a *App) contentHeight() int {
	// Header, footer and surrounding newlines
	return a.height - 4
}

// showNotice surfaces a transient, auto-expiring status line
func (a *App) showNotice(text string) tea.Cmd {
	a.notice = text
	a.noticeSeq++
	seq := a.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("CampusBot"))

	rightText := ""
	if identity := a.gate.Identity(); identity != nil {
		name := identity.Name
		if identity.IsAdmin {
			name += " " + icons.Shield.String()
		}
		rightText = contextStyle.Render(name) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and notices
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenLanding:
		shortcuts = []string{"enter Submit", "esc Quit"}
	case ScreenChat:
		shortcuts = []string{"enter Send", "ctrl+h History", "ctrl+l Logout"}
		if identity := a.gate.Identity(); identity != nil && identity.IsAdmin {
			shortcuts = append(shortcuts, "ctrl+a Admin")
		}
	case ScreenAdmin:
		shortcuts = []string{"←→ Tabs", "n New", "e Edit", "d Delete", "b Back"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if a.notice != "" {
		rightText = styles.Notice.Render(icons.Warning.String()+" "+a.notice) + " "
		rightPlainText = icons.Warning.String() + " " + a.notice + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftPlainText) - lipgloss.Width(rightPlainText)
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder
	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())
	return sb.String()
}

// resolveSession runs the startup token exchange or session probe
func (a *App) resolveSession() tea.Cmd {
	return func() tea.Msg {
		res := a.resolver.Resolve(context.Background(), a.redirectURL)
		return sessionResolvedMsg{res: res}
	}
}

// submitQuery sends one query, carrying the sticky conversation id
func (a *App) submitQuery(text string) tea.Cmd {
	conversationID := a.controller.ConversationID()
	return func() tea.Msg {
		result, err := a.client.SubmitQuery(context.Background(), text, conversationID)
		return queryAnsweredMsg{result: result, err: err}
	}
}

// fetchHistory reloads the durable history list wholesale
func (a *App) fetchHistory() tea.Cmd {
	gen := a.loader.BeginFetch()
	return func() tea.Msg {
		entries, err := a.loader.Fetch(context.Background())
		return historyLoadedMsg{gen: gen, entries: entries, err: err}
	}
}

// loadAdminData fetches every entity list plus the query log in parallel
func (a *App) loadAdminData() tea.Cmd {
	return func() tea.Msg {
		var data admin.Data
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() (err error) { data.FAQs, err = a.client.ListFAQs(ctx); return })
		g.Go(func() (err error) { data.Departments, err = a.client.ListDepartments(ctx); return })
		g.Go(func() (err error) { data.Faculty, err = a.client.ListFaculty(ctx); return })
		g.Go(func() (err error) { data.Events, err = a.client.ListEvents(ctx); return })
		g.Go(func() (err error) { data.Locations, err = a.client.ListLocations(ctx); return })
		g.Go(func() (err error) { data.Queries, err = a.client.AllQueries(ctx); return })
		if err := g.Wait(); err != nil {
			return adminDataMsg{err: err}
		}
		return adminDataMsg{data: data}
	}
}

// saveEntity dispatches a create or update to the matching endpoint
func (a *App) saveEntity(msg admin.SaveMsg) tea.Cmd {
	save := msg
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch entity := msg.Entity.(type) {
		case client.FAQ:
			if msg.ID == "" {
				_, err = a.client.CreateFAQ(ctx, entity)
			} else {
				_, err = a.client.UpdateFAQ(ctx, msg.ID, entity)
			}
		case client.Department:
			if msg.ID == "" {
				_, err = a.client.CreateDepartment(ctx, entity)
			} else {
				_, err = a.client.UpdateDepartment(ctx, msg.ID, entity)
			}
		case client.Faculty:
			if msg.ID == "" {
				_, err = a.client.CreateFaculty(ctx, entity)
			} else {
				_, err = a.client.UpdateFaculty(ctx, msg.ID, entity)
			}
		case client.Event:
			if msg.ID == "" {
				_, err = a.client.CreateEvent(ctx, entity)
			} else {
				_, err = a.client.UpdateEvent(ctx, msg.ID, entity)
			}
		case client.Location:
			if msg.ID == "" {
				_, err = a.client.CreateLocation(ctx, entity)
			} else {
				_, err = a.client.UpdateLocation(ctx, msg.ID, entity)
			}
		default:
			err = errors.New("unknown entity type")
		}
		return crudDoneMsg{err: err, save: &save}
	}
}

// deleteEntity dispatches a delete to the matching endpoint
func (a *App) deleteEntity(msg admin.DeleteMsg) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch msg.Kind {
		case admin.KindFAQ:
			err = a.client.DeleteFAQ(ctx, msg.ID)
		case admin.KindDepartment:
			err = a.client.DeleteDepartment(ctx, msg.ID)
		case admin.KindFaculty:
			err = a.client.DeleteFaculty(ctx, msg.ID)
		case admin.KindEvent:
			err = a.client.DeleteEvent(ctx, msg.ID)
		case admin.KindLocation:
			err = a.client.DeleteLocation(ctx, msg.ID)
		case admin.KindQueries:
			err = a.client.DeleteQuery(ctx, msg.ID)
		}
		return crudDoneMsg{err: err}
	}
}

// promoteUser grants the admin role to the selected query's author
func (a *App) promoteUser(msg admin.PromoteMsg) tea.Cmd {
	return func() tea.Msg {
		err := a.client.MakeAdmin(context.Background(), msg.UserID)
		return crudDoneMsg{err: err}
	}
}

// logout invalidates the server session in the background
func (a *App) logout() tea.Cmd {
	return func() tea.Msg {
		err := a.client.Logout(context.Background())
		return loggedOutMsg{err: err}
	}
}

// Run starts the TUI
func Run(cfg *config.Config, apiClient *client.Client, redirectURL string) error {
	if err := debuglog.Init(cfg.ConfigDir); err == nil {
		defer debuglog.Close()
	}

	app := New(cfg, apiClient, redirectURL)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

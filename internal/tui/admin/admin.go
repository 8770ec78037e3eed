// ABOUTME: Admin dashboard with knowledge entity CRUD and the all-users query log
// ABOUTME: Pass-through editor using huh forms; nothing is written before server confirmation

package admin

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"campusbot/internal/client"
	"campusbot/internal/tui/icons"
	"campusbot/internal/tui/styles"
)

// Kind identifies one admin tab.
type Kind int

const (
	KindFAQ Kind = iota
	KindDepartment
	KindFaculty
	KindEvent
	KindLocation
	KindQueries
)

var tabNames = []string{"FAQs", "Departments", "Faculty", "Events", "Locations", "Queries"}

// String returns the tab label for a kind
func (k Kind) String() string {
	if int(k) < len(tabNames) {
		return tabNames[k]
	}
	return "unknown"
}

// Data holds every list the dashboard displays. The backend owns all of
// it; the dashboard renders and edits pass-through.
type Data struct {
	FAQs        []client.FAQ
	Departments []client.Department
	Faculty     []client.Faculty
	Events      []client.Event
	Locations   []client.Location
	Queries     []client.HistoryEntry
}

// BackMsg is sent when the user leaves the dashboard.
type BackMsg struct{}

// ReloadRequestedMsg asks the app to refetch all entity lists.
type ReloadRequestedMsg struct{}

// SaveMsg carries a create (empty ID) or update for one entity.
// Entity is one of the client entity types matching Kind.
type SaveMsg struct {
	Kind   Kind
	ID     string
	Entity interface{}
}

// DeleteMsg asks the app to delete one entity or query log row.
type DeleteMsg struct {
	Kind Kind
	ID   string
}

// PromoteMsg asks the app to grant the admin role to the user who
// authored the selected query log row.
type PromoteMsg struct {
	UserID string
}

// formField is one editable attribute in the entity form.
type formField struct {
	label string
	value string
}

// Admin is the dashboard model.
type Admin struct {
	data   Data
	tab    Kind
	cursor int
	width  int
	height int

	// Active form state; nil when browsing
	form       *huh.Form
	formFields []*formField
	formKind   Kind
	formID     string
}

// New creates an empty dashboard; data arrives via SetData.
func New() *Admin {
	return &Admin{}
}

// SetData replaces all lists wholesale.
func (a *Admin) SetData(data Data) {
	a.data = data
	a.clampCursor()
}

// SetSize adjusts the layout to the terminal dimensions.
func (a *Admin) SetSize(width, height int) {
	a.width = width
	a.height = height
}

// Reopen rebuilds the entity form seeded with previously attempted
// values, used when a save fails and needs correction.
func (a *Admin) Reopen(kind Kind, id string, entity interface{}) tea.Cmd {
	return a.openForm(kind, id, entity)
}

// Editing reports whether an entity form is open.
func (a *Admin) Editing() bool {
	return a.form != nil
}

// Init implements the child-model contract.
func (a *Admin) Init() tea.Cmd {
	return nil
}

// Update implements the child-model contract.
func (a *Admin) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.form != nil {
		return a.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "right", "tab":
			a.tab = (a.tab + 1) % Kind(len(tabNames))
			a.cursor = 0
			return a, nil
		case "left", "shift+tab":
			a.tab = (a.tab + Kind(len(tabNames)) - 1) % Kind(len(tabNames))
			a.cursor = 0
			return a, nil
		case "up", "k":
			if a.cursor > 0 {
				a.cursor--
			}
			return a, nil
		case "down", "j":
			if a.cursor < a.rowCount()-1 {
				a.cursor++
			}
			return a, nil
		case "n":
			if a.tab != KindQueries {
				return a, a.openForm(a.tab, "", nil)
			}
			return a, nil
		case "e", "enter":
			if a.tab != KindQueries && a.rowCount() > 0 {
				id, entity := a.selected()
				return a, a.openForm(a.tab, id, entity)
			}
			return a, nil
		case "d":
			if a.rowCount() == 0 {
				return a, nil
			}
			id, _ := a.selected()
			kind := a.tab
			return a, func() tea.Msg {
				return DeleteMsg{Kind: kind, ID: id}
			}
		case "m":
			if a.tab != KindQueries || a.rowCount() == 0 {
				return a, nil
			}
			userID := a.data.Queries[a.cursor].UserID
			if userID == "" {
				return a, nil
			}
			return a, func() tea.Msg {
				return PromoteMsg{UserID: userID}
			}
		case "r":
			return a, func() tea.Msg {
				return ReloadRequestedMsg{}
			}
		case "b", "esc":
			return a, func() tea.Msg {
				return BackMsg{}
			}
		}
	}

	return a, nil
}

// updateForm routes messages into the active huh form
func (a *Admin) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		// Cancelled: the form held the only pending state, so nothing
		// to roll back.
		a.form = nil
		a.formFields = nil
		return a, nil
	}

	model, cmd := a.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		a.form = form
	}

	if a.form.State == huh.StateCompleted {
		kind, id := a.formKind, a.formID
		entity := a.buildEntity(kind, a.formFields)
		a.form = nil
		a.formFields = nil
		return a, func() tea.Msg {
			return SaveMsg{Kind: kind, ID: id, Entity: entity}
		}
	}

	return a, cmd
}

// openForm builds a huh form seeded from the entity under edit
func (a *Admin) openForm(kind Kind, id string, entity interface{}) tea.Cmd {
	a.formKind = kind
	a.formID = id
	a.formFields = seedFields(kind, entity)

	inputs := make([]huh.Field, 0, len(a.formFields))
	for _, f := range a.formFields {
		inputs = append(inputs, huh.NewInput().Title(f.label).Value(&f.value))
	}

	title := "New " + kind.String()
	if id != "" {
		title = "Edit " + kind.String()
	}
	a.form = huh.NewForm(
		huh.NewGroup(inputs...).Title(title),
	).WithTheme(huh.ThemeBase())

	return a.form.Init()
}

// seedFields returns the editable attributes for a kind, filled from
// the existing entity when editing
func seedFields(kind Kind, entity interface{}) []*formField {
	switch kind {
	case KindFAQ:
		var e client.FAQ
		if v, ok := entity.(client.FAQ); ok {
			e = v
		}
		return []*formField{
			{"Question", e.Question},
			{"Answer", e.Answer},
			{"Category", e.Category},
			{"Tags (comma separated)", strings.Join(e.Tags, ", ")},
		}
	case KindDepartment:
		var e client.Department
		if v, ok := entity.(client.Department); ok {
			e = v
		}
		return []*formField{
			{"Position", e.Position},
			{"Name", e.Name},
			{"Contact", e.Contact},
		}
	case KindFaculty:
		var e client.Faculty
		if v, ok := entity.(client.Faculty); ok {
			e = v
		}
		return []*formField{
			{"Name", e.Name},
			{"Role", e.Role},
			{"Qualification", e.Qualification},
			{"Bio", e.Bio},
			{"Office", e.Office},
		}
	case KindEvent:
		var e client.Event
		if v, ok := entity.(client.Event); ok {
			e = v
		}
		return []*formField{
			{"Title", e.Title},
			{"Description", e.Description},
			{"Date", e.Date},
			{"Location", e.Location},
			{"Organizer", e.Organizer},
		}
	case KindLocation:
		var e client.Location
		if v, ok := entity.(client.Location); ok {
			e = v
		}
		return []*formField{
			{"Floor", e.Floor},
			{"Name", e.Name},
		}
	}
	return nil
}

// buildEntity converts the completed form back into a client entity
func (a *Admin) buildEntity(kind Kind, fields []*formField) interface{} {
	get := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i].value)
		}
		return ""
	}
	switch kind {
	case KindFAQ:
		return client.FAQ{
			Question: get(0),
			Answer:   get(1),
			Category: get(2),
			Tags:     splitTags(get(3)),
		}
	case KindDepartment:
		return client.Department{Position: get(0), Name: get(1), Contact: get(2)}
	case KindFaculty:
		return client.Faculty{
			Name:          get(0),
			Role:          get(1),
			Qualification: get(2),
			Bio:           get(3),
			Office:        get(4),
		}
	case KindEvent:
		return client.Event{
			Title:       get(0),
			Description: get(1),
			Date:        get(2),
			Location:    get(3),
			Organizer:   get(4),
		}
	case KindLocation:
		return client.Location{Floor: get(0), Name: get(1)}
	}
	return nil
}

func splitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// selected returns the id and entity under the cursor
func (a *Admin) selected() (string, interface{}) {
	switch a.tab {
	case KindFAQ:
		e := a.data.FAQs[a.cursor]
		return e.ID, e
	case KindDepartment:
		e := a.data.Departments[a.cursor]
		return e.ID, e
	case KindFaculty:
		e := a.data.Faculty[a.cursor]
		return e.ID, e
	case KindEvent:
		e := a.data.Events[a.cursor]
		return e.ID, e
	case KindLocation:
		e := a.data.Locations[a.cursor]
		return e.ID, e
	case KindQueries:
		e := a.data.Queries[a.cursor]
		return e.ID, e
	}
	return "", nil
}

func (a *Admin) rowCount() int {
	switch a.tab {
	case KindFAQ:
		return len(a.data.FAQs)
	case KindDepartment:
		return len(a.data.Departments)
	case KindFaculty:
		return len(a.data.Faculty)
	case KindEvent:
		return len(a.data.Events)
	case KindLocation:
		return len(a.data.Locations)
	case KindQueries:
		return len(a.data.Queries)
	}
	return 0
}

func (a *Admin) clampCursor() {
	if n := a.rowCount(); a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// View renders the dashboard.
func (a *Admin) View() string {
	if a.form != nil {
		return a.form.View()
	}

	var sb strings.Builder
	sb.WriteString(a.viewTabs())
	sb.WriteString("\n\n")
	sb.WriteString(a.viewRows())
	sb.WriteString("\n")
	if a.tab == KindQueries {
		sb.WriteString(styles.Help.Render("←→ tab · ↑↓ select · d delete · m make admin · r reload · b back"))
	} else {
		sb.WriteString(styles.Help.Render("←→ tab · ↑↓ select · n new · e edit · d delete · r reload · b back"))
	}
	return sb.String()
}

func (a *Admin) viewTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Kind(i) == a.tab {
			tabs = append(tabs, styles.KeyStyle.Render("["+name+"]"))
		} else {
			tabs = append(tabs, styles.Subtitle.Render(" "+name+" "))
		}
	}
	return styles.Title.Render(icons.Shield.String()+" Admin Dashboard") + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *Admin) viewRows() string {
	rows := a.rowLabels()
	if len(rows) == 0 {
		return styles.Subtitle.Render("Nothing here yet.")
	}

	maxRows := a.height - 10
	if maxRows < 3 {
		maxRows = 3
	}
	start := 0
	if a.cursor >= maxRows {
		start = a.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(rows) {
		end = len(rows)
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		prefix := "  "
		line := rows[i]
		if i == a.cursor {
			prefix = styles.KeyStyle.Render("> ")
			line = styles.ValueStyle.Render(line)
		}
		sb.WriteString(prefix + line + "\n")
	}
	if end < len(rows) {
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("  ... %d more", len(rows)-end)))
	}
	return sb.String()
}

// rowLabels formats one display line per row for the active tab
func (a *Admin) rowLabels() []string {
	width := a.width - 8
	if width < 40 {
		width = 40
	}
	var rows []string
	switch a.tab {
	case KindFAQ:
		for _, e := range a.data.FAQs {
			rows = append(rows, truncate(e.Question+" ["+e.Category+"]", width))
		}
	case KindDepartment:
		for _, e := range a.data.Departments {
			rows = append(rows, truncate(e.Position+" · "+e.Name+" ("+e.Contact+")", width))
		}
	case KindFaculty:
		for _, e := range a.data.Faculty {
			rows = append(rows, truncate(e.Name+" · "+e.Role+", "+e.Office, width))
		}
	case KindEvent:
		for _, e := range a.data.Events {
			rows = append(rows, truncate(e.Title+" @ "+e.Location+" on "+e.Date, width))
		}
	case KindLocation:
		for _, e := range a.data.Locations {
			rows = append(rows, truncate(e.Name+" (floor "+e.Floor+")", width))
		}
	case KindQueries:
		for _, e := range a.data.Queries {
			rows = append(rows, truncate(e.Query+" → "+e.Response, width))
		}
	}
	return rows
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if n <= 3 || len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

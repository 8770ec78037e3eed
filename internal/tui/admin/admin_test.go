// ABOUTME: Tests for the admin dashboard model
// ABOUTME: Verifies tab navigation, CRUD message emission, and form building

package admin

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"campusbot/internal/client"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleData() Data {
	return Data{
		FAQs: []client.FAQ{
			{ID: "faq-1", Question: "Parking?", Answer: "Building A.", Category: "facilities"},
			{ID: "faq-2", Question: "WiFi?", Answer: "eduroam.", Category: "it"},
		},
		Departments: []client.Department{{ID: "dep-1", Name: "CS", Contact: "cs@campus.edu"}},
		Queries:     []client.HistoryEntry{{ID: "q-1", UserID: "u-7", Query: "gym?", Response: "east wing"}},
	}
}

func TestAdmin_TabNavigationWraps(t *testing.T) {
	a := New()

	a.Update(keyMsg("left"))
	if a.tab != KindQueries {
		t.Errorf("expected wrap to last tab, got %v", a.tab)
	}
	a.Update(keyMsg("right"))
	if a.tab != KindFAQ {
		t.Errorf("expected wrap back to first tab, got %v", a.tab)
	}
}

func TestAdmin_DeleteEmitsMessage(t *testing.T) {
	a := New()
	a.SetData(sampleData())
	a.Update(keyMsg("down"))

	_, cmd := a.Update(keyMsg("d"))
	if cmd == nil {
		t.Fatal("expected delete command")
	}
	msg, ok := cmd().(DeleteMsg)
	if !ok {
		t.Fatalf("expected DeleteMsg, got %T", cmd())
	}
	if msg.Kind != KindFAQ || msg.ID != "faq-2" {
		t.Errorf("unexpected delete target: %+v", msg)
	}
}

func TestAdmin_DeleteOnEmptyTabIgnored(t *testing.T) {
	a := New()

	_, cmd := a.Update(keyMsg("d"))
	if cmd != nil {
		t.Error("delete on an empty list must be ignored")
	}
}

func TestAdmin_NewOpensForm(t *testing.T) {
	a := New()
	a.SetData(sampleData())

	a.Update(keyMsg("n"))
	if !a.Editing() {
		t.Error("expected form opened for new entity")
	}
	if a.formID != "" {
		t.Errorf("new entity must have empty id, got %q", a.formID)
	}
}

func TestAdmin_NewIgnoredOnQueriesTab(t *testing.T) {
	a := New()
	a.SetData(sampleData())
	a.tab = KindQueries

	a.Update(keyMsg("n"))
	if a.Editing() {
		t.Error("query log rows cannot be created")
	}
}

func TestAdmin_EditSeedsFormFromSelection(t *testing.T) {
	a := New()
	a.SetData(sampleData())

	a.Update(keyMsg("e"))
	if !a.Editing() {
		t.Fatal("expected form opened")
	}
	if a.formID != "faq-1" {
		t.Errorf("expected selected id seeded, got %q", a.formID)
	}
	if a.formFields[0].value != "Parking?" {
		t.Errorf("expected question seeded, got %q", a.formFields[0].value)
	}
}

func TestAdmin_EscCancelsForm(t *testing.T) {
	a := New()
	a.SetData(sampleData())
	a.Update(keyMsg("e"))

	a.Update(keyMsg("esc"))
	if a.Editing() {
		t.Error("expected form closed on esc")
	}
}

func TestAdmin_PromoteOnQueriesTab(t *testing.T) {
	a := New()
	a.SetData(sampleData())
	a.tab = KindQueries

	_, cmd := a.Update(keyMsg("m"))
	if cmd == nil {
		t.Fatal("expected promote command")
	}
	msg, ok := cmd().(PromoteMsg)
	if !ok {
		t.Fatalf("expected PromoteMsg, got %T", cmd())
	}
	if msg.UserID != "u-7" {
		t.Errorf("unexpected user id %q", msg.UserID)
	}
}

func TestAdmin_PromoteIgnoredOnEntityTabs(t *testing.T) {
	a := New()
	a.SetData(sampleData())

	_, cmd := a.Update(keyMsg("m"))
	if cmd != nil {
		t.Error("promote only applies to the query log")
	}
}

func TestAdmin_BackEmitsMessage(t *testing.T) {
	a := New()

	_, cmd := a.Update(keyMsg("b"))
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Fatalf("expected BackMsg, got %T", cmd())
	}
}

func TestAdmin_ReloadEmitsMessage(t *testing.T) {
	a := New()

	_, cmd := a.Update(keyMsg("r"))
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(ReloadRequestedMsg); !ok {
		t.Fatalf("expected ReloadRequestedMsg, got %T", cmd())
	}
}

func TestBuildEntity_FAQ(t *testing.T) {
	a := New()
	fields := []*formField{
		{"Question", " Parking? "},
		{"Answer", "Building A."},
		{"Category", "facilities"},
		{"Tags (comma separated)", "parking, cars , "},
	}

	entity := a.buildEntity(KindFAQ, fields)
	faq, ok := entity.(client.FAQ)
	if !ok {
		t.Fatalf("expected client.FAQ, got %T", entity)
	}
	if faq.Question != "Parking?" {
		t.Errorf("expected trimmed question, got %q", faq.Question)
	}
	if !reflect.DeepEqual(faq.Tags, []string{"parking", "cars"}) {
		t.Errorf("unexpected tags: %v", faq.Tags)
	}
}

func TestSeedFields_RoundTripsThroughBuild(t *testing.T) {
	a := New()
	original := client.Event{
		Title:       "Orientation",
		Description: "Welcome week",
		Date:        "2026-09-01",
		Location:    "Main hall",
		Organizer:   "Student union",
	}

	fields := seedFields(KindEvent, original)
	rebuilt := a.buildEntity(KindEvent, fields).(client.Event)

	if rebuilt != original {
		t.Errorf("round trip changed the entity: %+v != %+v", rebuilt, original)
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"one", []string{"one"}},
		{"a, b,c", []string{"a", "b", "c"}},
		{" , ,", []string{}},
	}
	for _, tt := range tests {
		if got := splitTags(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitTags(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAdmin_ViewShowsActiveTabRows(t *testing.T) {
	a := New()
	a.SetData(sampleData())
	a.SetSize(100, 30)

	view := a.View()
	if !strings.Contains(view, "Parking?") {
		t.Error("expected FAQ rows on the default tab")
	}

	a.tab = KindQueries
	view = a.View()
	if !strings.Contains(view, "gym?") {
		t.Error("expected query log rows on the queries tab")
	}
}

func TestAdmin_CursorClampedAfterDataShrinks(t *testing.T) {
	a := New()
	a.SetData(sampleData())
	a.Update(keyMsg("down"))

	a.SetData(Data{FAQs: []client.FAQ{{ID: "faq-1", Question: "Parking?"}}})
	if a.cursor != 0 {
		t.Errorf("expected cursor clamped, got %d", a.cursor)
	}
}

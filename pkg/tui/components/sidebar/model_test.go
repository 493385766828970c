package sidebar

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/freewrite/pkg/collection"
	"tableflip.dev/freewrite/pkg/entry"
	"tableflip.dev/freewrite/pkg/prefs"
	"tableflip.dev/freewrite/pkg/tui/theme"
)

func fixture() []*entry.Entry {
	a := entry.New("a", time.Date(2025, time.February, 2, 9, 0, 0, 0, time.Local))
	a.SetContent("a quiet morning")
	b := entry.New("b", time.Date(2025, time.January, 20, 9, 0, 0, 0, time.Local))
	b.SetContent("cold walk")
	c := entry.New("c", time.Date(2025, time.January, 5, 9, 0, 0, 0, time.Local))
	return []*entry.Entry{a, b, c}
}

func newSidebar() *Model {
	m := NewModel(theme.For(prefs.Light).Sidebar)
	m.SetSize(40, 12)
	return m
}

func TestSetSectionsHighlightsActive(t *testing.T) {
	m := newSidebar()
	m.SetSections(collection.Sections(fixture(), ""), "b")

	got, ok := m.Selected()
	if !ok || got.ID != "b" {
		t.Fatalf("expected b highlighted, got %+v", got)
	}
}

func TestMoveSkipsHeaders(t *testing.T) {
	m := newSidebar()
	m.SetSections(collection.Sections(fixture(), ""), "a")

	m.Move(1)
	if got, _ := m.Selected(); got.ID != "b" {
		t.Fatalf("expected b after moving down, got %s", got.ID)
	}
	m.Move(5)
	if got, _ := m.Selected(); got.ID != "c" {
		t.Fatalf("expected to stop at c, got %s", got.ID)
	}
	m.Move(-10)
	if got, _ := m.Selected(); got.ID != "a" {
		t.Fatalf("expected to stop at a, got %s", got.ID)
	}
}

func TestSetSectionsKeepsHighlight(t *testing.T) {
	m := newSidebar()
	m.SetSections(collection.Sections(fixture(), ""), "a")
	m.Move(2)

	m.SetSections(collection.Sections(fixture(), ""), "a")
	if got, _ := m.Selected(); got.ID != "c" {
		t.Fatalf("expected highlight kept on c, got %s", got.ID)
	}
}

func TestEmptySections(t *testing.T) {
	m := newSidebar()
	m.SetSections(nil, "")
	if _, ok := m.Selected(); ok {
		t.Fatalf("expected nothing selected")
	}
	if !strings.Contains(m.View(), "No entries") {
		t.Fatalf("expected empty marker in view")
	}
}

func TestTypingChangesQuery(t *testing.T) {
	m := newSidebar()
	m.Focus()
	m.SetSections(collection.Sections(fixture(), ""), "a")

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	if m.Query() != "j" {
		t.Fatalf("expected query j, got %q", m.Query())
	}
	if cmd == nil {
		t.Fatalf("expected a command reporting the query change")
	}
}

func TestViewListsSectionsAndPreviews(t *testing.T) {
	m := newSidebar()
	m.SetSections(collection.Sections(fixture(), ""), "a")

	view := m.View()
	for _, want := range []string{"February 2025", "January 2025", "Jan 20", "cold walk", "empty"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

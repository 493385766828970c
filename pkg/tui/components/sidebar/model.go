// Package sidebar renders the searchable, month-grouped entry history.
package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/freewrite/pkg/collection"
	"tableflip.dev/freewrite/pkg/entry"
	"tableflip.dev/freewrite/pkg/tui/theme"
)

// QueryChangedMsg reports that the search text changed.
type QueryChangedMsg struct {
	Query string
}

type row struct {
	header string
	entry  *entry.Entry
}

// Model is the history panel. Only entry rows can be highlighted.
type Model struct {
	search   textinput.Model
	rows     []row
	cursor   int
	offset   int
	activeID string
	width    int
	height   int
	focused  bool
	styles   theme.SidebarTheme
}

// NewModel builds an empty sidebar.
func NewModel(styles theme.SidebarTheme) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return &Model{search: ti, styles: styles, cursor: -1}
}

// SetStyles swaps the theme.
func (m *Model) SetStyles(styles theme.SidebarTheme) {
	m.styles = styles
}

// SetSize updates the panel dimensions, border included.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.SetWidth(max(m.innerWidth()-len(m.search.Prompt)-1, 1))
	m.clampOffset()
}

// Width is the rendered width.
func (m *Model) Width() int { return m.width }

// Query is the current search text.
func (m *Model) Query() string { return m.search.Value() }

// Focus starts routing keys to the search field.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.search.Focus()
}

// Blur stops routing keys to the search field.
func (m *Model) Blur() {
	m.focused = false
	m.search.Blur()
}

// Focused reports whether the sidebar has focus.
func (m *Model) Focused() bool { return m.focused }

// SetSections replaces the listed entries, keeping the highlighted entry when
// it is still present and otherwise highlighting the active one.
func (m *Model) SetSections(sections []collection.Section, activeID string) {
	var keep string
	if e, ok := m.Selected(); ok {
		keep = e.ID
	}
	m.activeID = activeID
	m.rows = m.rows[:0]
	for _, s := range sections {
		m.rows = append(m.rows, row{header: s.Title})
		for _, e := range s.Entries {
			m.rows = append(m.rows, row{entry: e})
		}
	}

	m.cursor = -1
	for _, want := range []string{keep, activeID} {
		if want == "" {
			continue
		}
		for i, r := range m.rows {
			if r.entry != nil && r.entry.ID == want {
				m.cursor = i
				break
			}
		}
		if m.cursor >= 0 {
			break
		}
	}
	if m.cursor < 0 {
		m.cursor = m.next(-1, 1)
	}
	m.clampOffset()
}

// Selected is the highlighted entry.
func (m *Model) Selected() (*entry.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) || m.rows[m.cursor].entry == nil {
		return nil, false
	}
	return m.rows[m.cursor].entry, true
}

// Move shifts the highlight by delta entries, skipping headers.
func (m *Model) Move(delta int) {
	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}
	for ; delta > 0; delta-- {
		if n := m.next(m.cursor, step); n >= 0 {
			m.cursor = n
		}
	}
	m.clampOffset()
}

func (m *Model) next(from, step int) int {
	for i := from + step; i >= 0 && i < len(m.rows); i += step {
		if m.rows[i].entry != nil {
			return i
		}
	}
	return -1
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles navigation keys and forwards the rest to the search field.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "up":
			m.Move(-1)
			return m, nil
		case "down":
			m.Move(1)
			return m, nil
		case "pgup":
			m.Move(-m.listHeight())
			return m, nil
		case "pgdown":
			m.Move(m.listHeight())
			return m, nil
		}
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		changed := func() tea.Msg { return QueryChangedMsg{Query: after} }
		return m, tea.Batch(cmd, changed)
	}
	return m, cmd
}

func (m *Model) innerWidth() int {
	// border plus horizontal padding
	return max(m.width-3, 1)
}

func (m *Model) listHeight() int {
	return max(m.height-2, 1)
}

func (m *Model) clampOffset() {
	h := m.listHeight()
	if m.cursor >= 0 {
		if m.cursor < m.offset {
			m.offset = m.cursor
		}
		if m.cursor >= m.offset+h {
			m.offset = m.cursor - h + 1
		}
		// show the section header above the first entry
		if m.offset > 0 && m.offset == m.cursor && m.rows[m.offset-1].entry == nil {
			m.offset--
		}
	}
	if m.offset > len(m.rows)-h {
		m.offset = max(len(m.rows)-h, 0)
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the panel.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	w := m.innerWidth()
	lines := make([]string, 0, m.height)
	lines = append(lines, m.styles.Search.Width(w).Render(m.search.View()), "")

	if len(m.rows) == 0 {
		msg := "No entries"
		if strings.TrimSpace(m.Query()) != "" {
			msg = "No matches"
		}
		lines = append(lines, m.styles.Empty.Width(w).Render(msg))
	}

	end := min(m.offset+m.listHeight(), len(m.rows))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i, w))
	}
	for len(lines) < m.height {
		lines = append(lines, m.styles.Preview.Width(w).Render(""))
	}

	return m.styles.Frame.Width(m.width).Height(m.height).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderRow(i, w int) string {
	r := m.rows[i]
	if r.entry == nil {
		return m.styles.Header.Render(truncate.StringWithTail(r.header, uint(w), "…"))
	}

	date := fmt.Sprintf("%-6s ", r.entry.DisplayDate())
	preview := r.entry.Preview
	style := m.styles.Preview
	if preview == "" {
		preview = "empty"
		style = m.styles.Empty
	}
	preview = truncate.StringWithTail(preview, uint(max(w-2-len(date), 1)), "…")

	marker := "  "
	if r.entry.ID == m.activeID {
		marker = m.styles.Active.Render("● ")
	}
	text := m.styles.Date.Render(date) + style.Render(preview)
	if i == m.cursor && m.focused {
		text = m.styles.Selected.Render(date + preview)
	}
	return marker + text
}

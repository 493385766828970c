// Package eventviewer renders the debug activity panel: what the session
// saved, which entries it switched between and what changed on disk.
package eventviewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	"github.com/charmbracelet/lipgloss/v2"
)

// Kind groups records by what the session did.
type Kind int

const (
	KindStatus Kind = iota
	KindSave
	KindSwitch
	KindWatch

	kindCount
)

var kindNames = [kindCount]string{"status", "save", "switch", "watch"}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Record is one line of activity.
type Record struct {
	At       time.Time
	Kind     Kind
	Action   string
	Filename string
	Err      error
	// Repeat counts identical records folded into this one.
	Repeat int
}

func (r Record) sameAs(o Record) bool {
	return r.Err == nil && o.Err == nil &&
		r.Kind == o.Kind && r.Action == o.Action && r.Filename == o.Filename
}

// Styles controls the panel's presentation.
type Styles struct {
	Frame   lipgloss.Style
	Header  lipgloss.Style
	Time    lipgloss.Style
	Kind    lipgloss.Style
	Line    lipgloss.Style
	Failure lipgloss.Style
}

// DefaultStyles returns the stock styling.
func DefaultStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
		Time:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Kind:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Line:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
	}
}

// Model keeps the newest records first, up to a limit.
type Model struct {
	viewport viewport.Model
	records  []Record
	limit    int

	counts   [kindCount]int
	failures int

	filter   Kind
	filtered bool

	width  int
	height int
	styles Styles
}

// NewModel returns a panel holding at most limit records.
func NewModel(limit int) *Model {
	if limit <= 0 {
		limit = 200
	}
	return &Model{
		viewport: viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		limit:    limit,
		styles:   DefaultStyles(),
	}
}

// SetSize fits the panel, border included, into width x height.
func (m *Model) SetSize(width, height int) {
	width, height = max(width, 4), max(height, 3)
	if m.width == width && m.height == height {
		return
	}
	m.width, m.height = width, height
	m.viewport.SetWidth(max(1, width-2))
	// border and header
	m.viewport.SetHeight(max(1, height-3))
	m.refresh()
}

// Height is the rendered height including the border.
func (m *Model) Height() int { return m.height }

// Add logs r. A record identical to the newest one bumps its repeat count
// instead of taking another line.
func (m *Model) Add(r Record) {
	if r.At.IsZero() {
		r.At = time.Now()
	}
	if r.Kind < 0 || r.Kind >= kindCount {
		r.Kind = KindStatus
	}
	m.counts[r.Kind]++
	if r.Err != nil {
		m.failures++
	}
	if len(m.records) > 0 && m.records[0].sameAs(r) {
		m.records[0].Repeat++
		m.records[0].At = r.At
	} else {
		m.records = append([]Record{r}, m.records...)
		if len(m.records) > m.limit {
			m.records = m.records[:m.limit]
		}
	}
	m.refresh()
	m.viewport.SetYOffset(0)
}

// Records returns the records passing the current filter, newest first.
func (m *Model) Records() []Record {
	out := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		if !m.filtered || r.Kind == m.filter {
			out = append(out, r)
		}
	}
	return out
}

// Count is how many records of kind were added, folded repeats included.
func (m *Model) Count(kind Kind) int {
	if kind < 0 || kind >= kindCount {
		return 0
	}
	return m.counts[kind]
}

// Failures is how many records carried an error.
func (m *Model) Failures() int { return m.failures }

// CycleFilter steps through all, save, switch, watch and status, returning
// the label of the new filter.
func (m *Model) CycleFilter() string {
	switch {
	case !m.filtered:
		m.filtered, m.filter = true, KindSave
	case m.filter == KindStatus:
		m.filtered = false
	default:
		m.filter = (m.filter + 1) % kindCount
	}
	m.refresh()
	return m.filterLabel()
}

func (m *Model) filterLabel() string {
	if !m.filtered {
		return "all"
	}
	return m.filter.String()
}

// Clear drops every record and counter.
func (m *Model) Clear() {
	m.records = nil
	m.counts = [kindCount]int{}
	m.failures = 0
	m.refresh()
}

// SetStyles overrides the default styling.
func (m *Model) SetStyles(styles Styles) {
	m.styles = styles
	m.refresh()
}

// View renders the bordered panel.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Left, m.styles.Header.Render(m.header()), m.viewport.View())
	return m.styles.Frame.Width(m.width).Height(m.height).Render(body)
}

func (m *Model) header() string {
	parts := []string{"Activity"}
	for k := KindSave; k < kindCount; k++ {
		parts = append(parts, fmt.Sprintf("%s %d", k, m.counts[k]))
	}
	if m.failures > 0 {
		parts = append(parts, fmt.Sprintf("failed %d", m.failures))
	}
	return strings.Join(parts, "  ") + "  [" + m.filterLabel() + "]"
}

func (m *Model) refresh() {
	var lines []string
	for _, r := range m.Records() {
		lines = append(lines, m.render(r))
	}
	if len(lines) == 0 {
		m.viewport.SetContent(m.styles.Time.Render("Nothing yet"))
		return
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m *Model) render(r Record) string {
	text := r.Action
	if r.Filename != "" {
		text += " " + r.Filename
	}
	if r.Repeat > 0 {
		text += fmt.Sprintf(" x%d", r.Repeat+1)
	}
	style := m.styles.Line
	if r.Err != nil {
		text += ": " + r.Err.Error()
		style = m.styles.Failure
	}
	return fmt.Sprintf("%s %s %s",
		m.styles.Time.Render(r.At.Format(time.TimeOnly)),
		m.styles.Kind.Render(fmt.Sprintf("%-6s", r.Kind)),
		style.Render(text))
}

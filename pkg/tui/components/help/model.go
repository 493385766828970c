// Package help renders the shortcut reference overlay.
package help

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/freewrite/pkg/key"
	"tableflip.dev/freewrite/pkg/prefs"
)

// Model renders the Glamour-based help overlay inside a bordered viewport.
type Model struct {
	viewport viewport.Model
	width    int
	height   int
	scheme   prefs.ColorScheme

	frame lipgloss.Style
	err   error
}

// New constructs a help overlay model sized to the provided bounds.
func New(width, height int, scheme prefs.ColorScheme) *Model {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Margin(0).
		Padding(0, 1)
	model := &Model{
		viewport: vp,
		frame:    frame,
		scheme:   scheme,
	}
	model.SetSize(width, height)
	return model
}

// SetFrame replaces the border style, keeping the overlay size.
func (m *Model) SetFrame(frame lipgloss.Style) {
	m.frame = frame
	w, h := m.width, m.height
	m.width, m.height = 0, 0
	m.SetSize(w, h)
}

// SetScheme re-renders the markdown for a color scheme.
func (m *Model) SetScheme(scheme prefs.ColorScheme) {
	if m.scheme == scheme {
		return
	}
	m.scheme = scheme
	m.renderContent(m.viewport.Width())
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// View renders the help content inside a rounded frame.
func (m *Model) View() string {
	body := m.viewport.View()
	if body == "" && m.err != nil {
		body = "help unavailable: " + m.err.Error()
	}
	return m.frame.Width(m.width).Height(m.height).Render(body)
}

// SetSize configures the overlay dimensions and re-renders the markdown to fit.
func (m *Model) SetSize(width, height int) {
	minWidth, minHeight := 32, 8
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}
	if m.width == width && m.height == height {
		return
	}

	m.width = width
	m.height = height

	frameX := m.frame.GetHorizontalFrameSize()
	frameY := m.frame.GetVerticalFrameSize()

	innerWidth := max(width-frameX, 1)
	innerHeight := max(height-frameY, 1)

	m.viewport.SetWidth(innerWidth)
	m.viewport.SetHeight(innerHeight)

	m.renderContent(innerWidth)
}

func (m *Model) renderContent(wrap int) {
	renderWidth := max(wrap, 10)
	style := "light"
	if m.scheme == prefs.Dark {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(renderWidth),
	)
	if err != nil {
		m.err = err
		m.viewport.SetContent("help unavailable: " + err.Error())
		return
	}

	content, err := renderer.Render(Markdown())
	if err != nil {
		m.err = err
		m.viewport.SetContent("help unavailable: " + err.Error())
		return
	}

	content = stripANSI(content)

	m.err = nil
	m.viewport.SetContent(content)
	m.viewport.SetYOffset(0)
}

// Markdown documents the keymap, one table per scope.
func Markdown() string {
	var b strings.Builder
	b.WriteString("# Freewrite\n\n")
	b.WriteString("Write without stopping. Entries save themselves every second.\n")
	for _, scope := range []struct {
		scope key.Scope
		title string
	}{{key.Global, "Writing"}, {key.Sidebar, "History"}} {
		fmt.Fprintf(&b, "\n## %s\n\n| Keys | Action |\n| --- | --- |\n", scope.title)
		for _, binding := range key.Bindings {
			if binding.Scope != scope.scope {
				continue
			}
			fmt.Fprintf(&b, "| `%s` | %s |\n", binding.Label(), binding.Help)
		}
	}
	b.WriteString("\nPress `esc` to close.\n")
	return b.String()
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

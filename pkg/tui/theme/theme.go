package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/freewrite/pkg/prefs"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Scheme  prefs.ColorScheme
	Editor  EditorTheme
	Sidebar SidebarTheme
	Footer  FooterTheme
}

// EditorTheme styles the writing surface.
type EditorTheme struct {
	Page        lipgloss.Style
	Placeholder lipgloss.Style
}

// SidebarTheme styles the history panel.
type SidebarTheme struct {
	Frame    lipgloss.Style
	Search   lipgloss.Style
	Header   lipgloss.Style
	Date     lipgloss.Style
	Preview  lipgloss.Style
	Empty    lipgloss.Style
	Selected lipgloss.Style
	Active   lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Bar     lipgloss.Style
	Item    lipgloss.Style
	Muted   lipgloss.Style
	Running lipgloss.Style
	Expired lipgloss.Style
	Status  lipgloss.Style
}

type palette struct {
	page, text, panel, border, accent string
}

var (
	light = palette{page: "#ffffff", text: "#1f1f1f", panel: "#f7f7f7", border: "#dddddd", accent: "#c2410c"}
	dark  = palette{page: "#000000", text: "#e6e6e6", panel: "#111111", border: "#333333", accent: "#fb923c"}
)

// For returns the theme for a color scheme.
func For(scheme prefs.ColorScheme) Theme {
	p := light
	if scheme == prefs.Dark {
		p = dark
	}

	page := lipgloss.Color(p.page)
	text := lipgloss.Color(p.text)
	panel := lipgloss.Color(p.panel)
	border := lipgloss.Color(p.border)
	accent := lipgloss.Color(p.accent)
	muted := blend(p.text, p.page, 0.55)
	subtle := blend(p.text, p.panel, 0.35)

	base := lipgloss.NewStyle().Foreground(text).Background(page)
	side := lipgloss.NewStyle().Foreground(text).Background(panel)

	return Theme{
		Scheme: scheme,
		Editor: EditorTheme{
			Page:        base,
			Placeholder: base.Foreground(muted).Italic(true),
		},
		Sidebar: SidebarTheme{
			Frame: side.
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(border).
				BorderBackground(page).
				Padding(0, 1),
			Search:   side.Foreground(subtle),
			Header:   side.Bold(true).Underline(true),
			Date:     side.Bold(true),
			Preview:  side.Foreground(subtle),
			Empty:    side.Foreground(muted).Italic(true),
			Selected: side.Reverse(true),
			Active:   side.Foreground(accent),
		},
		Footer: FooterTheme{
			Bar:     base,
			Item:    base.Foreground(subtle),
			Muted:   base.Foreground(muted),
			Running: base.Foreground(accent).Bold(true),
			Expired: base.Foreground(accent).Blink(true),
			Status:  base.Foreground(muted).Italic(true),
		},
	}
}

// blend mixes two hex colors in Lab space; t=0 gives a, t=1 gives b.
func blend(a, b string, t float64) color.Color {
	ca, err := colorful.Hex(a)
	if err != nil {
		return lipgloss.Color(a)
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return lipgloss.Color(a)
	}
	return lipgloss.Color(ca.BlendLab(cb, t).Clamped().Hex())
}

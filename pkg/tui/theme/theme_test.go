package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/freewrite/pkg/prefs"
)

func TestForScheme(t *testing.T) {
	if got := For(prefs.Dark).Scheme; got != prefs.Dark {
		t.Fatalf("For(dark).Scheme = %s", got)
	}
	if got := For("sepia").Scheme; got != "sepia" {
		t.Fatalf("unknown schemes keep their name, got %s", got)
	}
}

func TestBlendEndpoints(t *testing.T) {
	r1, g1, b1, _ := blend("#000000", "#ffffff", 0).RGBA()
	r2, g2, b2, _ := lipgloss.Color("#000000").RGBA()
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Fatalf("blend at 0 should be the first color")
	}
	r, _, _, _ := blend("#000000", "#ffffff", 0.5).RGBA()
	if r == 0 || r == 0xffff {
		t.Fatalf("blend at 0.5 should be a mid grey, got r=%d", r)
	}
}

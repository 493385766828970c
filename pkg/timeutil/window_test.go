package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowEmpty(t *testing.T) {
	d, err := ParseWindow("  ")
	if err != nil || d != 0 {
		t.Fatalf("ParseWindow(blank) = %v, %v", d, err)
	}
}

func TestParseWindowComposite(t *testing.T) {
	d, err := ParseWindow("1w 2d6h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (7*24+2*24+6)*time.Hour + 30*time.Minute
	if d != want {
		t.Fatalf("expected %v, got %v", want, d)
	}
	if got := FormatWindow(d); got != "1w2d6h30m" {
		t.Fatalf("unexpected label: %s", got)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3 fortnights", "0m"} {
		if _, err := ParseWindow(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestSince(t *testing.T) {
	now := time.Date(2025, time.March, 14, 15, 30, 0, 0, time.UTC)
	if got := Since(now, 24*time.Hour); !got.Equal(time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Since 1d = %v", got)
	}
	if got := Since(now, 0); !got.IsZero() {
		t.Fatalf("Since 0 = %v", got)
	}
}

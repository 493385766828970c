package pick

import (
	"errors"
	"testing"
	"time"

	"tableflip.dev/freewrite/pkg/entry"
)

func TestSearcher(t *testing.T) {
	a := entry.New(entry.NewID(), time.Date(2025, time.March, 14, 9, 0, 0, 0, time.Local))
	a.SetContent("\n\nRiver stones")
	b := entry.New(entry.NewID(), time.Date(2025, time.April, 2, 9, 0, 0, 0, time.Local))
	b.SetContent("\n\nKite string")
	search := Searcher([]*entry.Entry{a, b})

	tests := []struct {
		input string
		index int
		want  bool
	}{
		{"river", 0, true},
		{"riverstones", 0, true},
		{"RIVER", 1, false},
		{a.DisplayDate(), 0, true},
		{"", 1, true},
	}
	for _, tt := range tests {
		if got := search(tt.input, tt.index); got != tt.want {
			t.Fatalf("search(%q, %d) = %v, want %v", tt.input, tt.index, got, tt.want)
		}
	}
}

func TestEntryNoEntries(t *testing.T) {
	if _, err := Entry("Open", nil, nil, nil); !errors.Is(err, ErrNoEntries) {
		t.Fatalf("err = %v, want ErrNoEntries", err)
	}
}

package eventviewer

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var at = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func TestAddFoldsRepeatedSaves(t *testing.T) {
	m := NewModel(10)
	m.SetSize(80, 8)
	for i := 0; i < 3; i++ {
		m.Add(Record{At: at.Add(time.Duration(i) * time.Second), Kind: KindSave, Action: "autosave", Filename: "a.md"})
	}
	m.Add(Record{At: at.Add(4 * time.Second), Kind: KindSwitch, Action: "open", Filename: "b.md"})

	got := m.Records()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Action != "open" || got[1].Repeat != 2 {
		t.Fatalf("records = %+v", got)
	}
	if m.Count(KindSave) != 3 || m.Count(KindSwitch) != 1 {
		t.Fatalf("counts save=%d switch=%d", m.Count(KindSave), m.Count(KindSwitch))
	}
	view := m.View()
	for _, want := range []string{"save 3", "switch 1", "a.md x3", "open b.md"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestFailuresAreNeverFolded(t *testing.T) {
	m := NewModel(10)
	m.SetSize(80, 8)
	boom := errors.New("disk full")
	m.Add(Record{At: at, Kind: KindSave, Action: "autosave", Filename: "a.md", Err: boom})
	m.Add(Record{At: at, Kind: KindSave, Action: "autosave", Filename: "a.md", Err: boom})

	if len(m.Records()) != 2 || m.Failures() != 2 {
		t.Fatalf("records=%d failures=%d", len(m.Records()), m.Failures())
	}
	view := m.View()
	if !strings.Contains(view, "failed 2") || !strings.Contains(view, "a.md: disk full") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestLimitKeepsNewest(t *testing.T) {
	m := NewModel(2)
	m.Add(Record{At: at, Kind: KindStatus, Action: "one"})
	m.Add(Record{At: at, Kind: KindStatus, Action: "two"})
	m.Add(Record{At: at, Kind: KindStatus, Action: "three"})

	got := m.Records()
	if len(got) != 2 || got[0].Action != "three" || got[1].Action != "two" {
		t.Fatalf("records = %+v", got)
	}
}

func TestCycleFilter(t *testing.T) {
	m := NewModel(10)
	m.SetSize(80, 8)
	m.Add(Record{At: at, Kind: KindSave, Action: "autosave", Filename: "a.md"})
	m.Add(Record{At: at, Kind: KindWatch, Action: "changed", Filename: "c.md"})

	want := []string{"save", "switch", "watch", "status", "all"}
	for _, label := range want {
		if got := m.CycleFilter(); got != label {
			t.Fatalf("filter = %q, want %q", got, label)
		}
		if label == "watch" {
			recs := m.Records()
			if len(recs) != 1 || recs[0].Filename != "c.md" {
				t.Fatalf("watch records = %+v", recs)
			}
			if strings.Contains(m.View(), "a.md") {
				t.Fatalf("save record shown under watch filter")
			}
		}
	}
	if len(m.Records()) != 2 {
		t.Fatalf("all filter should show both records")
	}
}

func TestEmptyAndClear(t *testing.T) {
	m := NewModel(5)
	if m.View() != "" {
		t.Fatalf("unsized view should be empty")
	}
	m.SetSize(40, 5)
	m.Add(Record{Kind: KindStatus, Action: "hello"})
	if m.Records()[0].At.IsZero() {
		t.Fatalf("timestamp not defaulted")
	}
	m.Clear()
	if m.Count(KindStatus) != 0 || !strings.Contains(m.View(), "Nothing yet") {
		t.Fatalf("clear left state behind:\n%s", m.View())
	}
}

package timer

import (
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	tm := New(0)
	if tm.Remaining() != 900*time.Second {
		t.Fatalf("expected 900s, got %v", tm.Remaining())
	}
	if tm.State() != Idle {
		t.Fatalf("expected idle, got %v", tm.State())
	}
	if got := tm.String(); got != "15:00" {
		t.Fatalf("expected 15:00, got %q", got)
	}
}

func TestTickOnlyWhileRunning(t *testing.T) {
	tm := New(3 * time.Second)
	tm.Tick()
	if tm.Remaining() != 3*time.Second {
		t.Fatalf("idle timer must not count down")
	}

	tm.Toggle()
	if tm.State() != Running {
		t.Fatalf("expected running")
	}
	tm.Tick()
	if tm.Remaining() != 2*time.Second {
		t.Fatalf("expected 2s, got %v", tm.Remaining())
	}
}

func TestExpires(t *testing.T) {
	tm := New(2 * time.Second)
	tm.Toggle()
	if tm.Tick() {
		t.Fatalf("should not expire after first tick")
	}
	if !tm.Tick() {
		t.Fatalf("expected expiry on second tick")
	}
	if tm.State() != Expired || tm.Remaining() != 0 {
		t.Fatalf("expected expired at 0, got %v at %v", tm.State(), tm.Remaining())
	}
	if tm.Tick() {
		t.Fatalf("expired timer must not tick")
	}
}

func TestTogglePausesAndRestarts(t *testing.T) {
	tm := New(5 * time.Second)
	tm.Toggle()
	tm.Tick()
	tm.Toggle()
	if tm.State() != Idle || tm.Remaining() != 4*time.Second {
		t.Fatalf("expected paused at 4s, got %v at %v", tm.State(), tm.Remaining())
	}
	tm.Toggle()
	if tm.State() != Running || tm.Remaining() != 4*time.Second {
		t.Fatalf("expected resumed at 4s, got %v at %v", tm.State(), tm.Remaining())
	}

	for i := 0; i < 4; i++ {
		tm.Tick()
	}
	if tm.State() != Expired {
		t.Fatalf("expected expired")
	}
	tm.Toggle()
	if tm.State() != Running || tm.Remaining() != 5*time.Second {
		t.Fatalf("expected restart from full duration, got %v at %v", tm.State(), tm.Remaining())
	}
}

func TestReset(t *testing.T) {
	tm := New(10 * time.Second)
	tm.Toggle()
	tm.Tick()
	tm.Reset()
	if tm.State() != Idle || tm.Remaining() != 10*time.Second {
		t.Fatalf("expected idle at full duration, got %v at %v", tm.State(), tm.Remaining())
	}
}

func TestAdjust(t *testing.T) {
	tm := New(DefaultDuration)
	tm.Adjust(5 * time.Minute)
	if tm.Remaining() != 20*time.Minute {
		t.Fatalf("expected 20m, got %v", tm.Remaining())
	}
	tm.Adjust(time.Hour)
	if tm.Remaining() != 45*time.Minute {
		t.Fatalf("expected clamp at 45m, got %v", tm.Remaining())
	}
	tm.Adjust(-time.Hour)
	if tm.Remaining() != 0 {
		t.Fatalf("expected clamp at 0, got %v", tm.Remaining())
	}

	tm.Adjust(5 * time.Minute)
	tm.Toggle()
	tm.Adjust(5 * time.Minute)
	if tm.Remaining() != 5*time.Minute {
		t.Fatalf("running timer must not be adjusted, got %v", tm.Remaining())
	}
}

func TestFormat(t *testing.T) {
	cases := map[time.Duration]string{
		0:                "0:00",
		9 * time.Second:  "0:09",
		61 * time.Second: "1:01",
		45 * time.Minute: "45:00",
	}
	for d, want := range cases {
		if got := Format(d); got != want {
			t.Fatalf("Format(%v): expected %q, got %q", d, want, got)
		}
	}
}

// Package events holds the messages exchanged inside the Bubble Tea program.
package events

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/freewrite/pkg/store"
)

// Describer is implemented by messages worth logging.
type Describer interface {
	Describe() string
}

// TickMsg fires every autosave interval to drive autosave and the timer.
type TickMsg struct {
	At time.Time
}

func (m TickMsg) Describe() string {
	return "tick " + m.At.Format(time.TimeOnly)
}

// AutosavedMsg reports the result of one autosave tick.
type AutosavedMsg struct {
	Saved    bool
	Filename string
	Err      error
}

func (m AutosavedMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf("autosave %s failed: %v", m.Filename, m.Err)
	}
	return fmt.Sprintf("autosave %s saved:%t", m.Filename, m.Saved)
}

// EntryLoadedMsg is sent after the session switched, created or deleted an
// entry and the editor must reload its buffer.
type EntryLoadedMsg struct {
	Action string
	// Filename is the entry active once the action finished.
	Filename string
	Err      error
}

func (m EntryLoadedMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf("%s failed: %v", m.Action, m.Err)
	}
	return m.Action
}

// WatchStartedMsg carries the store watch subscription.
type WatchStartedMsg struct {
	Ch     <-chan store.Event
	Cancel context.CancelFunc
	Err    error
}

func (m WatchStartedMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf("watch failed: %v", m.Err)
	}
	return "watch started"
}

// WatchEventMsg wraps one store change.
type WatchEventMsg struct {
	Event store.Event
}

func (m WatchEventMsg) Describe() string {
	return fmt.Sprintf("watch %d %s", m.Event.Type, m.Event.Filename)
}

// WatchStoppedMsg reports that the watch channel closed.
type WatchStoppedMsg struct{}

func (WatchStoppedMsg) Describe() string { return "watch stopped" }

// ReloadedMsg is sent after the entry list was re-read from disk.
type ReloadedMsg struct{}

func (ReloadedMsg) Describe() string { return "reloaded" }

// StatusMsg shows a transient line in the status bar.
type StatusMsg struct {
	Text string
}

func (m StatusMsg) Describe() string { return "status " + m.Text }

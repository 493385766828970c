// Package key defines the keyboard shortcuts of the writing UI.
package key

import (
	"strings"
)

// Action is something a shortcut does.
type Action int

const (
	None Action = iota
	ToggleSidebar
	ToggleTimer
	ResetTimer
	TimerUp
	TimerDown
	NewEntry
	DeleteEntry
	OpenEntry
	CycleFont
	FontLarger
	FontSmaller
	ToggleScheme
	Share
	Back
	Help
	EventLog
	EventFilter
	Quit
)

// Scope is where a binding applies.
type Scope string

const (
	Global  Scope = "global"
	Sidebar Scope = "sidebar"
)

// Binding maps keys to an action.
type Binding struct {
	Keys   []string
	Action Action
	Scope  Scope
	Help   string
}

// Bindings is the full keymap, in the order it is documented.
var Bindings = []Binding{
	{Keys: []string{"ctrl+s"}, Action: ToggleSidebar, Scope: Global, Help: "Show or hide history"},
	{Keys: []string{"ctrl+t"}, Action: ToggleTimer, Scope: Global, Help: "Start or pause the timer"},
	{Keys: []string{"ctrl+r"}, Action: ResetTimer, Scope: Global, Help: "Reset the timer"},
	{Keys: []string{"alt+up"}, Action: TimerUp, Scope: Global, Help: "Add five minutes to a stopped timer"},
	{Keys: []string{"alt+down"}, Action: TimerDown, Scope: Global, Help: "Take five minutes off a stopped timer"},
	{Keys: []string{"ctrl+n"}, Action: NewEntry, Scope: Global, Help: "New entry"},
	{Keys: []string{"ctrl+f"}, Action: CycleFont, Scope: Global, Help: "Next font"},
	{Keys: []string{"ctrl+k"}, Action: FontLarger, Scope: Global, Help: "Larger text"},
	{Keys: []string{"ctrl+j"}, Action: FontSmaller, Scope: Global, Help: "Smaller text"},
	{Keys: []string{"ctrl+l"}, Action: ToggleScheme, Scope: Global, Help: "Light or dark"},
	{Keys: []string{"ctrl+e"}, Action: Share, Scope: Global, Help: "Share the current entry"},
	{Keys: []string{"f1", "ctrl+g"}, Action: Help, Scope: Global, Help: "Show these shortcuts"},
	{Keys: []string{"f12"}, Action: EventLog, Scope: Global, Help: "Activity log, when started with --debug"},
	{Keys: []string{"f11"}, Action: EventFilter, Scope: Global, Help: "Filter the activity log by kind"},
	{Keys: []string{"ctrl+c"}, Action: Quit, Scope: Global, Help: "Save and quit"},
	{Keys: []string{"enter"}, Action: OpenEntry, Scope: Sidebar, Help: "Open the highlighted entry"},
	{Keys: []string{"ctrl+d"}, Action: DeleteEntry, Scope: Sidebar, Help: "Delete the highlighted entry"},
	{Keys: []string{"esc"}, Action: Back, Scope: Sidebar, Help: "Back to writing"},
}

// Lookup resolves a key press in scope. Global bindings apply everywhere.
func Lookup(pressed string, scope Scope) Action {
	for _, b := range Bindings {
		if b.Scope != Global && b.Scope != scope {
			continue
		}
		for _, k := range b.Keys {
			if k == pressed {
				return b.Action
			}
		}
	}
	return None
}

// Label joins the keys of a binding for display.
func (b Binding) Label() string {
	return strings.Join(b.Keys, ", ")
}

package key

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		pressed string
		scope   Scope
		want    Action
	}{
		{"ctrl+s", Global, ToggleSidebar},
		{"ctrl+s", Sidebar, ToggleSidebar},
		{"ctrl+d", Global, None},
		{"ctrl+d", Sidebar, DeleteEntry},
		{"enter", Global, None},
		{"x", Sidebar, None},
		{"f1", Sidebar, Help},
		{"ctrl+g", Global, Help},
		{"f12", Global, EventLog},
		{"f11", Sidebar, EventFilter},
	}
	for _, tt := range tests {
		if got := Lookup(tt.pressed, tt.scope); got != tt.want {
			t.Fatalf("Lookup(%q, %s) = %d, want %d", tt.pressed, tt.scope, got, tt.want)
		}
	}
}

func TestBindingsUnique(t *testing.T) {
	seen := map[string]Scope{}
	for _, b := range Bindings {
		for _, k := range b.Keys {
			if s, ok := seen[k]; ok && (s == b.Scope || s == Global || b.Scope == Global) {
				t.Fatalf("key %q bound twice", k)
			}
			seen[k] = b.Scope
		}
	}
}

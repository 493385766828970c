package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "freewrite.log")
	l, err := New(path, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	l.Debug("hidden")
	l.Info("hello")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Fatalf("expected info line, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
}

func TestNewOrNopWithoutPath(t *testing.T) {
	if l := NewOrNop("", true); l == nil {
		t.Fatalf("expected a logger")
	}
}

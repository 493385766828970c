package key

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/freewrite/pkg/key"
)

func TestKeyPrintsEveryBinding(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	k := Key{Out: &out}
	if err := k.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	for _, b := range key.Bindings {
		if !strings.Contains(out.String(), b.Help) {
			t.Fatalf("legend missing %q:\n%s", b.Help, out.String())
		}
	}
}

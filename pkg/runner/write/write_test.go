package write

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/freewrite/pkg/store"
)

func TestWriteReplacesAndAppends(t *testing.T) {
	color.NoColor = true
	p, err := store.Load(store.NewConfig(filepath.Join(t.TempDir(), "journal")))
	require.NoError(t, err)
	e, err := p.Create(false)
	require.NoError(t, err)

	var out bytes.Buffer
	w := Write{Ref: e.ID, In: strings.NewReader("\n\nfirst"), Persistence: p, Out: &out}
	require.NoError(t, w.Do(context.Background()))
	got, err := p.Read(e.Filename)
	require.NoError(t, err)
	assert.Equal(t, "\n\nfirst", got)
	assert.Contains(t, out.String(), "first")

	w = Write{Ref: e.ID, Append: true, In: strings.NewReader(" second"), Persistence: p, Out: &out}
	require.NoError(t, w.Do(context.Background()))
	got, err = p.Read(e.Filename)
	require.NoError(t, err)
	assert.Equal(t, "\n\nfirst second", got)
}

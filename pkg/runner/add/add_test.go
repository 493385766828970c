package add

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/freewrite/pkg/entry"
	"tableflip.dev/freewrite/pkg/store"
)

func TestAddWithContent(t *testing.T) {
	color.NoColor = true
	p, err := store.Load(store.NewConfig(filepath.Join(t.TempDir(), "journal")))
	require.NoError(t, err)

	var out bytes.Buffer
	a := Add{Content: "green tea", Persistence: p, Out: &out}
	require.NoError(t, a.Do(context.Background()))

	list := p.List(context.Background())
	require.Len(t, list, 1)
	got, err := p.Read(list[0].Filename)
	require.NoError(t, err)
	assert.Equal(t, entry.BlankContent+"green tea", got)
	assert.Contains(t, out.String(), "green tea")
}

func TestAddWelcome(t *testing.T) {
	color.NoColor = true
	p, err := store.Load(store.NewConfig(filepath.Join(t.TempDir(), "journal")))
	require.NoError(t, err)

	a := Add{Welcome: true, Content: "ignored", Persistence: p, Out: &bytes.Buffer{}}
	require.NoError(t, a.Do(context.Background()))

	list := p.List(context.Background())
	require.Len(t, list, 1)
	got, err := p.Read(list[0].Filename)
	require.NoError(t, err)
	assert.Equal(t, entry.WelcomeContent, got)
}

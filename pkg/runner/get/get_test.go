package get

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/freewrite/pkg/collection"
	"tableflip.dev/freewrite/pkg/entry"
	"tableflip.dev/freewrite/pkg/store"
)

func seeded(t *testing.T, bodies ...string) store.Persistence {
	t.Helper()
	p, err := store.Load(store.NewConfig(filepath.Join(t.TempDir(), "journal")))
	require.NoError(t, err)
	require.NoError(t, p.EnsureDirectory())
	for _, body := range bodies {
		e, err := p.Create(false)
		require.NoError(t, err)
		require.NoError(t, p.Write(e.Filename, entry.BlankContent+body))
	}
	return p
}

func TestGetPrintsPreviews(t *testing.T) {
	color.NoColor = true
	p := seeded(t, "river stones", "kite string")

	var out bytes.Buffer
	g := Get{Persistence: p, Out: &out}
	require.NoError(t, g.Do(context.Background()))

	assert.Contains(t, out.String(), "river stones")
	assert.Contains(t, out.String(), "kite string")
}

func TestGetQueryFilters(t *testing.T) {
	color.NoColor = true
	p := seeded(t, "river stones", "kite string")

	var out bytes.Buffer
	g := Get{Persistence: p, Out: &out, Query: "KITE"}
	require.NoError(t, g.Do(context.Background()))

	assert.Contains(t, out.String(), "kite string")
	assert.NotContains(t, out.String(), "river stones")
}

func TestGetJSON(t *testing.T) {
	p := seeded(t, "river stones")

	var out bytes.Buffer
	g := Get{Persistence: p, Out: &out, JSON: true}
	require.NoError(t, g.Do(context.Background()))

	var sections []collection.Section
	require.NoError(t, json.Unmarshal(out.Bytes(), &sections))
	require.Len(t, sections, 1)
	require.Len(t, sections[0].Entries, 1)
	assert.Equal(t, "river stones", sections[0].Entries[0].Preview)
}

func TestGetJSONEmpty(t *testing.T) {
	p := seeded(t)

	var out bytes.Buffer
	g := Get{Persistence: p, Out: &out, JSON: true}
	require.NoError(t, g.Do(context.Background()))
	assert.Equal(t, "[]\n", out.String())
}

func TestGetNoPersistence(t *testing.T) {
	g := Get{}
	assert.Error(t, g.Do(context.Background()))
}

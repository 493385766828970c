package prefs

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
	s := NewFileStore(path)

	_, ok, err := s.Get(KeyFontSize)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyFontSize, "22"))
	require.NoError(t, s.Set(KeyColorScheme, "dark"))

	again := NewFileStore(path)
	v, ok, err := again.Get(KeyFontSize)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "22", v)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "colorScheme: dark", "keys keep their case on disk")
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("::: not yaml ["), 0o644))

	_, _, err := NewFileStore(path).Get(KeyFontSize)
	assert.Error(t, err)
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	st, err := Load(NewMemoryStore(nil), Defaults(Light))
	require.NoError(t, err)
	assert.Equal(t, Settings{ColorScheme: Light, FontSize: 18, SelectedFont: "Lato-Regular"}, st)

	st, err = Load(NewMemoryStore(map[string]string{
		KeyColorScheme:       "dark",
		KeyFontSize:          "24",
		KeySelectedFont:      "Georgia",
		KeyCurrentRandomFont: "Georgia",
	}), Defaults(Light))
	require.NoError(t, err)
	assert.Equal(t, Settings{ColorScheme: Dark, FontSize: 24, SelectedFont: "Georgia", CurrentRandomFont: "Georgia"}, st)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	st, err := Load(NewMemoryStore(map[string]string{
		KeyColorScheme: "purple",
		KeyFontSize:    "huge",
	}), Defaults(Dark))
	require.NoError(t, err)
	assert.Equal(t, Dark, st.ColorScheme)
	assert.Equal(t, DefaultFontSize, st.FontSize)
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("boom") }
func (failingStore) Set(string, string) error         { return errors.New("boom") }

func TestLoadReportsErrorsButKeepsDefaults(t *testing.T) {
	st, err := Load(failingStore{}, Defaults(Light))
	assert.Error(t, err)
	assert.Equal(t, Defaults(Light), st)
}

func TestSave(t *testing.T) {
	m := NewMemoryStore(nil)
	want := Settings{ColorScheme: Dark, FontSize: 20, SelectedFont: "serif"}
	require.NoError(t, Save(m, want))

	got, err := Load(m, Defaults(Light))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestChooseFontRandomNeverPicksLast(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	last := AvailableFonts[len(AvailableFonts)-1]
	for i := 0; i < 500; i++ {
		selected, random, err := ChooseFont(RandomFont, rng)
		require.NoError(t, err)
		assert.Equal(t, selected, random)
		assert.NotEqual(t, last, selected)
	}

	selected, random, err := ChooseFont("Arial", rng)
	require.NoError(t, err)
	assert.Equal(t, "Arial", selected)
	assert.Empty(t, random)

	_, _, err = ChooseFont("", rng)
	assert.Error(t, err)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Random", RandomButtonTitle(""))
	assert.Equal(t, "Random [Lato]", RandomButtonTitle("Lato-Regular"))
	assert.Equal(t, "Random [Georgia]", RandomButtonTitle("Georgia"))

	assert.Equal(t, "Serif", Settings{SelectedFont: "serif"}.FontLabel())
	assert.Equal(t, "Random [Courier]", Settings{SelectedFont: "Courier", CurrentRandomFont: "Courier"}.FontLabel())
}

func TestNextFontOptionWraps(t *testing.T) {
	assert.Equal(t, "Arial", Settings{SelectedFont: "Lato-Regular"}.NextFontOption())
	assert.Equal(t, RandomFont, Settings{SelectedFont: "serif"}.NextFontOption())
	assert.Equal(t, "Lato-Regular", Settings{SelectedFont: "Georgia", CurrentRandomFont: "Georgia"}.NextFontOption())
	assert.Equal(t, "Lato-Regular", Settings{SelectedFont: "Unknown"}.NextFontOption())
}

func TestColorSchemeToggle(t *testing.T) {
	assert.Equal(t, Dark, Light.Toggle())
	assert.Equal(t, Light, Dark.Toggle())
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder(rand.New(rand.NewSource(7)))
	found := false
	for _, candidate := range Placeholders {
		if candidate == p {
			found = true
		}
	}
	assert.True(t, found, p)
	assert.False(t, strings.TrimSpace(p) == "")
}

func TestValidFontSize(t *testing.T) {
	assert.True(t, ValidFontSize(16))
	assert.False(t, ValidFontSize(17))
}

package teaui

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/prefs"
	"tableflip.dev/freewrite/pkg/store"
	"tableflip.dev/freewrite/pkg/timer"
	"tableflip.dev/freewrite/pkg/tui/components/eventviewer"
	"tableflip.dev/freewrite/pkg/tui/events"
)

func newTestModel(t *testing.T) (*Model, *app.Session, store.Persistence) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "journal")
	p, err := store.Load(store.NewConfig(dir))
	require.NoError(t, err)
	s := app.NewSession(p, prefs.NewMemoryStore(nil), nil, nil, app.WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, s.Bootstrap(context.Background()))

	m := New(context.Background(), s, nil)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, s, p
}

func press(m *Model, code rune, mod tea.KeyMod) tea.Cmd {
	_, cmd := m.Update(tea.KeyPressMsg{Code: code, Mod: mod})
	return cmd
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestWindowSizeLaysOutColumn(t *testing.T) {
	m, _, _ := newTestModel(t)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Equal(t, ColumnWidth(prefs.FontSizes[1]), m.column)
	assert.NotEmpty(t, m.View())
}

func TestColumnWidthShrinksWithFontSize(t *testing.T) {
	assert.Equal(t, 80, ColumnWidth(16))
	assert.Equal(t, 76, ColumnWidth(18))
	assert.Equal(t, 64, ColumnWidth(24))
	assert.Equal(t, 80, ColumnWidth(2))
}

func TestTypingUpdatesSessionBuffer(t *testing.T) {
	m, s, _ := newTestModel(t)
	typeText(m, "hi")

	assert.True(t, s.Dirty())
	assert.True(t, strings.HasSuffix(s.Buffer(), "hi"), "buffer %q", s.Buffer())
}

func TestToggleSidebarMovesFocus(t *testing.T) {
	m, _, _ := newTestModel(t)
	require.False(t, m.showSidebar)

	press(m, 's', tea.ModCtrl)
	assert.True(t, m.showSidebar)
	assert.True(t, m.sidebar.Focused())
	active, _ := m.session.Active()
	assert.Contains(t, m.View(), active.Section())

	press(m, tea.KeyEscape, 0)
	assert.True(t, m.showSidebar)
	assert.False(t, m.sidebar.Focused())

	press(m, 's', tea.ModCtrl)
	assert.False(t, m.showSidebar)
}

func TestToggleSchemeSwapsTheme(t *testing.T) {
	m, s, _ := newTestModel(t)
	before := s.Settings().ColorScheme

	press(m, 'l', tea.ModCtrl)
	assert.Equal(t, before.Toggle(), s.Settings().ColorScheme)
	assert.Equal(t, s.Settings().ColorScheme, m.theme.Scheme)
}

func TestFontSizeStepsNarrowColumn(t *testing.T) {
	m, s, _ := newTestModel(t)
	start := s.Settings().FontSize
	require.Equal(t, prefs.FontSizes[1], start)

	press(m, 'k', tea.ModCtrl)
	assert.Equal(t, prefs.FontSizes[2], s.Settings().FontSize)
	assert.Equal(t, ColumnWidth(prefs.FontSizes[2]), m.column)

	press(m, 'j', tea.ModCtrl)
	assert.Equal(t, start, s.Settings().FontSize)
}

func TestFooterShowsTimer(t *testing.T) {
	m, s, _ := newTestModel(t)
	assert.Contains(t, m.View(), "15:00")

	press(m, tea.KeyUp, tea.ModAlt)
	assert.Contains(t, m.View(), "20:00")

	press(m, 't', tea.ModCtrl)
	assert.Equal(t, timer.Running, s.Timer().State())
}

func TestTickAutosaves(t *testing.T) {
	m, s, p := newTestModel(t)
	typeText(m, "tick")

	_, cmd := m.Update(events.TickMsg{At: time.Now()})
	require.NotNil(t, cmd)

	active, ok := s.Active()
	require.True(t, ok)
	msg := m.autosaveCmd()()
	assert.Equal(t, events.AutosavedMsg{Saved: true, Filename: active.Filename}, msg)
	assert.False(t, s.Dirty())
	got, err := p.Read(active.Filename)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "tick"))
}

func TestQuitSavesBuffer(t *testing.T) {
	m, s, p := newTestModel(t)
	typeText(m, "bye")

	cmd := press(m, 'c', tea.ModCtrl)
	require.NotNil(t, cmd)
	assert.False(t, s.Dirty())

	active, ok := s.Active()
	require.True(t, ok)
	got, err := p.Read(active.Filename)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "bye"))
}

func TestNewEntryLoadsBlankBuffer(t *testing.T) {
	m, s, _ := newTestModel(t)
	typeText(m, "first")
	before, _ := s.Active()

	cmd := press(m, 'n', tea.ModCtrl)
	require.NotNil(t, cmd)
	m.Update(cmd())

	after, ok := s.Active()
	require.True(t, ok)
	assert.NotEqual(t, before.ID, after.ID)
	assert.Equal(t, s.Buffer(), m.editor.Value())
	assert.Len(t, s.Entries(), 2)
}

func TestKeysAfterSwitchStayOutOfNewEntry(t *testing.T) {
	m, s, p := newTestModel(t)
	typeText(m, "private old text")
	before, _ := s.Active()

	cmd := press(m, 'n', tea.ModCtrl)
	require.NotNil(t, cmd)
	msg := cmd()
	typeText(m, "x")
	m.Update(msg)

	after, ok := s.Active()
	require.True(t, ok)
	require.NotEqual(t, before.ID, after.ID)
	assert.False(t, s.Dirty())
	assert.False(t, s.Autosave(context.Background()))

	got, err := p.Read(after.Filename)
	require.NoError(t, err)
	assert.NotContains(t, got, "private old text")
	old, err := p.Read(before.Filename)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(old, "private old text"), "old entry %q", old)
	assert.Equal(t, s.Buffer(), m.editor.Value())
}

func TestKeysBeforeSwitchRunsAreDropped(t *testing.T) {
	m, s, p := newTestModel(t)
	typeText(m, "kept")
	before, _ := s.Active()

	cmd := press(m, 'n', tea.ModCtrl)
	require.NotNil(t, cmd)
	typeText(m, "lost")
	press(m, 'n', tea.ModCtrl)
	m.Update(cmd())
	assert.Len(t, s.Entries(), 2, "a second switch waits for the first")

	old, err := p.Read(before.Filename)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(old, "kept"), "old entry %q", old)
	assert.NotContains(t, old, "lost")
	assert.NotContains(t, s.Buffer(), "lost")
	assert.Empty(t, m.switching)

	typeText(m, "fresh")
	assert.True(t, strings.HasSuffix(s.Buffer(), "fresh"))
	assert.True(t, s.Dirty())
}

func TestOwnWriteIgnored(t *testing.T) {
	m, s, _ := newTestModel(t)
	active, _ := s.Active()

	assert.True(t, m.ownWrite(store.Event{Type: store.EventEntryChanged, Filename: active.Filename}))
	assert.False(t, m.ownWrite(store.Event{Type: store.EventEntryChanged, Filename: "other.md"}))
	assert.False(t, m.ownWrite(store.Event{Type: store.EventEntriesInvalidated}))
}

func TestStatusExpires(t *testing.T) {
	m, _, _ := newTestModel(t)
	now := time.Now()
	m.now = func() time.Time { return now }

	m.Update(events.StatusMsg{Text: "Shared"})
	assert.Contains(t, m.View(), "Shared")

	now = now.Add(statusLifetime + time.Second)
	assert.NotContains(t, m.View(), "Shared")
}

func TestHelpOverlayOpensAndCloses(t *testing.T) {
	m, _, _ := newTestModel(t)

	press(m, tea.KeyF1, 0)
	require.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Show these shortcuts")

	before := m.session.Buffer()
	typeText(m, "x")
	assert.True(t, m.showHelp)
	assert.Equal(t, before, m.session.Buffer(), "keys go to the overlay while it is open")

	press(m, tea.KeyEscape, 0)
	assert.False(t, m.showHelp)
}

func TestEventLogRecordsWhenEnabled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "journal")
	p, err := store.Load(store.NewConfig(dir))
	require.NoError(t, err)
	s := app.NewSession(p, prefs.NewMemoryStore(nil), nil, nil)
	require.NoError(t, s.Bootstrap(context.Background()))

	m := New(context.Background(), s, nil, WithEventLog())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(events.StatusMsg{Text: "hello"})
	m.Update(events.TickMsg{At: time.Now()})
	m.Update(events.AutosavedMsg{})
	m.Update(events.AutosavedMsg{Filename: "a.md", Err: errors.New("disk full")})

	recs := m.events.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, eventviewer.KindSave, recs[0].Kind)
	assert.Equal(t, "a.md", recs[0].Filename)
	assert.Equal(t, "hello", recs[1].Action)
	assert.Equal(t, 1, m.events.Failures())

	press(m, tea.KeyF12, 0)
	assert.True(t, m.showEvents)
	assert.Contains(t, m.View(), "hello")

	press(m, tea.KeyF11, 0)
	require.Len(t, m.events.Records(), 1)
	assert.Contains(t, m.View(), "Activity: save")
}

func TestActivityRecordsSwitchTarget(t *testing.T) {
	r := activity(events.EntryLoadedMsg{Action: "open", Filename: "b.md"}, time.Now())
	assert.Equal(t, eventviewer.KindSwitch, r.Kind)
	assert.Equal(t, "open", r.Action)
	assert.Equal(t, "b.md", r.Filename)

	r = activity(events.WatchEventMsg{Event: store.Event{Type: store.EventEntriesInvalidated}}, time.Now())
	assert.Equal(t, eventviewer.KindWatch, r.Kind)
	assert.Equal(t, "rescan", r.Action)
}

func TestEventLogKeyIgnoredWithoutDebug(t *testing.T) {
	m, _, _ := newTestModel(t)
	press(m, tea.KeyF12, 0)
	assert.False(t, m.showEvents)
}

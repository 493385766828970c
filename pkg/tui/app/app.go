// Package teaui hosts the Bubble Tea program for the freewrite TUI.
package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textarea"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/key"
	"tableflip.dev/freewrite/pkg/prefs"
	"tableflip.dev/freewrite/pkg/store"
	"tableflip.dev/freewrite/pkg/timer"
	"tableflip.dev/freewrite/pkg/tui/components/eventviewer"
	"tableflip.dev/freewrite/pkg/tui/components/help"
	"tableflip.dev/freewrite/pkg/tui/components/sidebar"
	"tableflip.dev/freewrite/pkg/tui/events"
	"tableflip.dev/freewrite/pkg/tui/theme"
)

const (
	statusLifetime = 3 * time.Second
	sidebarWidth   = 36
	timerStep      = 5 * time.Minute
)

// Model is the root of the writing UI.
type Model struct {
	ctx     context.Context
	session *app.Session
	log     *zap.Logger

	editor      textarea.Model
	lastValue   string
	// bufferID is the entry the editor text belongs to.
	bufferID    string
	// switching names the open, new entry or delete command in flight.
	switching   string
	column      int
	sidebar     *sidebar.Model
	showSidebar bool
	help        *help.Model
	showHelp    bool
	events      *eventviewer.Model
	showEvents  bool

	theme theme.Theme

	width  int
	height int

	status      string
	statusUntil time.Time
	now         func() time.Time

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// Option configures the root model.
type Option func(*Model)

// WithEventLog records session activity in a panel toggled from the keyboard.
func WithEventLog() Option {
	return func(m *Model) {
		m.events = eventviewer.NewModel(200)
	}
}

// New builds the root model for a bootstrapped session.
func New(ctx context.Context, session *app.Session, log *zap.Logger, opts ...Option) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = zap.NewNop()
	}
	th := theme.For(session.Settings().ColorScheme)

	ta := textarea.New()
	ta.Placeholder = ""
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false

	m := &Model{
		ctx:     ctx,
		session: session,
		log:     log,
		editor:  ta,
		sidebar: sidebar.NewModel(th.Sidebar),
		help:    help.New(0, 0, th.Scheme),
		theme:   th,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.loadBuffer()
	m.refreshSidebar()
	return m
}

// Run launches the interactive TUI program. The buffer is flushed before it
// returns.
func Run(ctx context.Context, session *app.Session, log *zap.Logger, opts ...Option) error {
	m := New(ctx, session, log, opts...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	m.stopWatch()
	if m.ctx.Err() != nil {
		err = nil
	}
	if serr := session.Save(context.Background()); serr != nil && err == nil {
		err = serr
	}
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.editor.Focus(), tickCmd(), startWatchCmd(m.ctx, m.session.Store()))
}

func tickCmd() tea.Cmd {
	return tea.Tick(app.AutosaveInterval, func(t time.Time) tea.Msg {
		return events.TickMsg{At: t}
	})
}

func startWatchCmd(parent context.Context, p store.Persistence) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := p.Watch(ctx)
		if err != nil {
			cancel()
			return events.WatchStartedMsg{Err: err}
		}
		return events.WatchStartedMsg{Ch: ch, Cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return events.WatchEventMsg{Event: ev}
		}
		return events.WatchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) autosaveCmd() tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		res := s.AutosaveResult(ctx)
		return events.AutosavedMsg{Saved: res.Saved, Filename: res.Filename, Err: res.Err}
	}
}

func loaded(s *app.Session, action string, err error) events.EntryLoadedMsg {
	msg := events.EntryLoadedMsg{Action: action, Err: err}
	if active, ok := s.Active(); ok {
		msg.Filename = active.Filename
	}
	return msg
}

func (m *Model) reloadCmd() tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		s.Reload(ctx)
		return events.ReloadedMsg{}
	}
}

func (m *Model) selectCmd(id string) tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		return loaded(s, "open", s.Select(ctx, id))
	}
}

func (m *Model) deleteCmd(id string) tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		return loaded(s, "delete", s.Delete(ctx, id))
	}
}

func (m *Model) newEntryCmd() tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		_, err := s.NewEntry(ctx)
		return loaded(s, "new entry", err)
	}
}

func (m *Model) shareCmd() tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		if err := s.Share(ctx); err != nil {
			return events.StatusMsg{Text: "Share failed"}
		}
		return events.StatusMsg{Text: "Shared"}
	}
}

// Update routes Bubble Tea messages to composed components.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.noteEvent(msg)

	var cmds []tea.Cmd

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layout()
		return m, nil
	case events.TickMsg:
		if m.session.Timer().Tick() {
			m.setStatus("Time's up")
		}
		return m, tea.Batch(m.autosaveCmd(), tickCmd())
	case events.AutosavedMsg:
		if v.Err != nil {
			m.setStatus("Autosave failed")
		}
		if v.Saved {
			m.refreshSidebar()
		}
		return m, nil
	case events.EntryLoadedMsg:
		m.switching = ""
		if v.Err != nil {
			m.setStatus(fmt.Sprintf("Could not %s", v.Action))
		}
		m.loadBuffer()
		m.refreshSidebar()
		if v.Action != "delete" {
			m.focusEditor(&cmds)
		}
		return m, tea.Batch(cmds...)
	case events.WatchStartedMsg:
		if v.Err != nil {
			m.log.Warn("watching journal", zap.Error(v.Err))
			return m, nil
		}
		m.watchCh = v.Ch
		m.watchCancel = v.Cancel
		return m, m.waitForWatch()
	case events.WatchEventMsg:
		if !m.ownWrite(v.Event) {
			cmds = append(cmds, m.reloadCmd())
		}
		cmds = append(cmds, m.waitForWatch())
		return m, tea.Batch(cmds...)
	case events.WatchStoppedMsg:
		m.watchCh = nil
		return m, nil
	case events.ReloadedMsg:
		m.refreshSidebar()
		return m, nil
	case events.StatusMsg:
		m.setStatus(v.Text)
		return m, nil
	case sidebar.QueryChangedMsg:
		m.refreshSidebar()
		return m, nil
	case tea.KeyPressMsg:
		if m.showHelp {
			return m, m.updateHelp(v)
		}
		if m.handleKey(v, &cmds) {
			return m, tea.Batch(cmds...)
		}
		if m.sidebarFocused() {
			_, cmd := m.sidebar.Update(v)
			return m, cmd
		}
		if m.switching != "" {
			// The editor still shows the previous entry until the switch lands.
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)
	if value := m.editor.Value(); value != m.lastValue {
		m.lastValue = value
		if !m.session.SetBuffer(m.bufferID, value) {
			m.log.Debug("dropping edit for inactive entry", zap.String("id", m.bufferID))
		}
	}
	if _, isKey := msg.(tea.KeyPressMsg); !isKey {
		_, cmd = m.sidebar.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// ownWrite reports whether ev is the echo of our own autosave.
func (m *Model) ownWrite(ev store.Event) bool {
	if ev.Type != store.EventEntryChanged {
		return false
	}
	active, ok := m.session.Active()
	return ok && active.Filename == ev.Filename
}

func (m *Model) handleKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	scope := key.Global
	if m.sidebarFocused() {
		scope = key.Sidebar
	}

	t := m.session.Timer()
	switch key.Lookup(msg.String(), scope) {
	case key.None:
		return false
	case key.Quit:
		m.session.SetBuffer(m.bufferID, m.editor.Value())
		if err := m.session.Save(m.ctx); err != nil {
			m.log.Warn("saving on quit", zap.Error(err))
		}
		m.stopWatch()
		*cmds = append(*cmds, tea.Quit)
	case key.ToggleSidebar:
		m.showSidebar = !m.showSidebar
		m.layout()
		if m.showSidebar {
			m.refreshSidebar()
			m.editor.Blur()
			*cmds = append(*cmds, m.sidebar.Focus())
		} else {
			m.focusEditor(cmds)
		}
	case key.Back:
		m.focusEditor(cmds)
	case key.OpenEntry:
		if e, ok := m.sidebar.Selected(); ok && m.beginSwitch("open") {
			*cmds = append(*cmds, m.selectCmd(e.ID))
		}
	case key.DeleteEntry:
		if e, ok := m.sidebar.Selected(); ok && m.beginSwitch("delete") {
			*cmds = append(*cmds, m.deleteCmd(e.ID))
		}
	case key.NewEntry:
		if m.beginSwitch("new entry") {
			*cmds = append(*cmds, m.newEntryCmd())
		}
	case key.ToggleTimer:
		t.Toggle()
	case key.ResetTimer:
		t.Reset()
	case key.TimerUp:
		t.Adjust(timerStep)
	case key.TimerDown:
		t.Adjust(-timerStep)
	case key.CycleFont:
		st := m.session.CycleFont()
		m.setStatus("Font: " + st.FontLabel())
	case key.FontLarger:
		m.session.StepFontSize(1)
		m.layout()
	case key.FontSmaller:
		m.session.StepFontSize(-1)
		m.layout()
	case key.ToggleScheme:
		m.theme = theme.For(m.session.ToggleColorScheme())
		m.sidebar.SetStyles(m.theme.Sidebar)
		m.help.SetScheme(m.theme.Scheme)
	case key.Share:
		*cmds = append(*cmds, m.shareCmd())
	case key.Help:
		m.showHelp = true
		m.layout()
	case key.EventLog:
		if m.events != nil {
			m.showEvents = !m.showEvents
			m.layout()
		}
	case key.EventFilter:
		if m.showEvents {
			m.setStatus("Activity: " + m.events.CycleFilter())
		}
	}
	return true
}

// beginSwitch marks action as in flight and takes keys away from the editor
// until it completes. It reports false while another switch is running.
func (m *Model) beginSwitch(action string) bool {
	if m.switching != "" {
		return false
	}
	m.switching = action
	m.editor.Blur()
	return true
}

// updateHelp closes the overlay on esc or the help keys and scrolls
// otherwise.
func (m *Model) updateHelp(msg tea.KeyPressMsg) tea.Cmd {
	pressed := msg.String()
	if pressed == "esc" || pressed == "q" || key.Lookup(pressed, key.Global) == key.Help {
		m.showHelp = false
		return nil
	}
	if key.Lookup(pressed, key.Global) == key.Quit {
		var cmds []tea.Cmd
		m.showHelp = false
		m.handleKey(msg, &cmds)
		return tea.Batch(cmds...)
	}
	_, cmd := m.help.Update(msg)
	return cmd
}

func (m *Model) sidebarFocused() bool {
	return m.showSidebar && m.sidebar.Focused()
}

func (m *Model) focusEditor(cmds *[]tea.Cmd) {
	m.sidebar.Blur()
	*cmds = append(*cmds, m.editor.Focus())
}

func (m *Model) loadBuffer() {
	m.bufferID = m.session.State().ActiveID
	value := m.session.Buffer()
	m.editor.SetValue(value)
	m.lastValue = m.editor.Value()
}

func (m *Model) refreshSidebar() {
	m.sidebar.SetSections(m.session.Sections(m.sidebar.Query()), m.session.State().ActiveID)
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusUntil = m.now().Add(statusLifetime)
}

func (m *Model) noteEvent(msg tea.Msg) {
	d, ok := msg.(events.Describer)
	if !ok {
		return
	}
	switch v := msg.(type) {
	case events.TickMsg:
		return
	case events.AutosavedMsg:
		if !v.Saved && v.Err == nil {
			return
		}
	}
	m.log.Debug("ui event", zap.String("event", d.Describe()))
	if m.events != nil {
		m.events.Add(activity(msg, m.now()))
	}
}

// activity maps a described message onto an activity record.
func activity(msg tea.Msg, at time.Time) eventviewer.Record {
	r := eventviewer.Record{At: at, Kind: eventviewer.KindStatus}
	switch v := msg.(type) {
	case events.AutosavedMsg:
		r.Kind, r.Action, r.Filename, r.Err = eventviewer.KindSave, "autosave", v.Filename, v.Err
	case events.EntryLoadedMsg:
		r.Kind, r.Action, r.Filename, r.Err = eventviewer.KindSwitch, v.Action, v.Filename, v.Err
	case events.WatchEventMsg:
		r.Kind, r.Filename = eventviewer.KindWatch, v.Event.Filename
		r.Action = "changed"
		if v.Event.Type == store.EventEntriesInvalidated {
			r.Action = "rescan"
		}
	case events.WatchStartedMsg:
		r.Kind, r.Action, r.Err = eventviewer.KindWatch, "watch started", v.Err
	case events.WatchStoppedMsg:
		r.Kind, r.Action = eventviewer.KindWatch, "watch stopped"
	case events.ReloadedMsg:
		r.Kind, r.Action = eventviewer.KindWatch, "reloaded"
	case events.StatusMsg:
		r.Action = v.Text
	case events.Describer:
		r.Action = v.Describe()
	}
	return r
}

// ColumnWidth is the writing column for a font size: larger type gets a
// narrower measure.
func ColumnWidth(fontSize int) int {
	if fontSize < prefs.FontSizes[0] {
		fontSize = prefs.FontSizes[0]
	}
	return 80 - (fontSize-prefs.FontSizes[0])*2
}

func (m *Model) bodyHeight() int {
	h := m.height - 1
	if m.showEvents {
		h -= m.events.Height()
	}
	return max(h, 1)
}

func (m *Model) editorArea() int {
	w := m.width
	if m.showSidebar {
		w -= m.sidebar.Width()
	}
	return max(w, 1)
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	if m.events != nil {
		m.events.SetSize(m.width, max(m.height/4, 5))
	}
	m.sidebar.SetSize(min(sidebarWidth, m.width/2), m.bodyHeight())
	m.help.SetSize(min(72, m.width-4), m.bodyHeight()-2)
	col := min(ColumnWidth(m.session.Settings().FontSize), max(m.editorArea()-4, 10))
	m.column = col
	m.editor.SetWidth(col)
	// one line for the placeholder, one for top padding
	m.editor.SetHeight(max(m.bodyHeight()-2, 1))
}

// View renders the editor, the optional sidebar and the status bar.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	body := m.renderEditor()
	if m.showHelp {
		body = m.theme.Editor.Page.Render(lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, m.help.View()))
	} else if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.sidebar.View())
	}
	if m.showEvents {
		return lipgloss.JoinVertical(lipgloss.Left, body, m.events.View(), m.renderFooter())
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

func (m *Model) renderEditor() string {
	area := m.editorArea()
	col := m.column
	left := max((area-col)/2, 0)

	placeholder := ""
	if strings.TrimSpace(m.editor.Value()) == "" {
		placeholder = m.theme.Editor.Placeholder.Render(m.session.Placeholder())
	}
	page := lipgloss.JoinVertical(lipgloss.Left, "", placeholder, m.editor.View())

	return m.theme.Editor.Page.
		Width(area).
		Height(m.bodyHeight()).
		MaxHeight(m.bodyHeight()).
		PaddingLeft(left).
		Render(page)
}

func (m *Model) renderFooter() string {
	f := m.theme.Footer
	st := m.session.Settings()
	t := m.session.Timer()

	timerStyle := f.Item
	switch t.State() {
	case timer.Running:
		timerStyle = f.Running
	case timer.Expired:
		timerStyle = f.Expired
	}

	sep := f.Muted.Render(" • ")
	left := strings.Join([]string{
		f.Item.Render(fmt.Sprintf("%dpx", st.FontSize)),
		f.Item.Render(st.FontLabel()),
		timerStyle.Render(t.String()),
	}, sep)

	saved := "unsaved"
	if !m.session.Dirty() {
		saved = "saved"
	}
	scheme := "dark mode"
	if st.ColorScheme == prefs.Dark {
		scheme = "light mode"
	}
	rightParts := []string{f.Muted.Render(saved), f.Item.Render("ctrl+s history"), f.Item.Render(scheme)}
	if m.status != "" && m.now().Before(m.statusUntil) {
		rightParts = append([]string{f.Status.Render(m.status)}, rightParts...)
	}
	right := strings.Join(rightParts, sep)

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return f.Bar.Width(m.width).Render(" " + left + strings.Repeat(" ", gap) + right + " ")
}

// Package app holds the session controller shared by the TUI, the CLI and the
// MCP server. It owns the entry list, the editor buffer and the display
// settings, and is the only place that decides when the buffer reaches disk.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"tableflip.dev/freewrite/pkg/collection"
	"tableflip.dev/freewrite/pkg/entry"
	"tableflip.dev/freewrite/pkg/prefs"
	"tableflip.dev/freewrite/pkg/share"
	"tableflip.dev/freewrite/pkg/store"
	"tableflip.dev/freewrite/pkg/timer"
)

const (
	// AutosaveInterval is how often the TUI flushes the buffer.
	AutosaveInterval = time.Second

	// handOffAttempts bounds how often a switch re-saves edits that arrived
	// while the previous save was in flight.
	handOffAttempts = 3
)

var (
	ErrEntryNotFound   = errors.New("app: entry not found")
	ErrInvalidFontSize = errors.New("app: invalid font size")
)

// Phase is the lifecycle stage of a session.
type Phase int

const (
	Bootstrapping Phase = iota
	Editing
)

func (p Phase) String() string {
	if p == Editing {
		return "editing"
	}
	return "bootstrapping"
}

// State is the observable application state.
type State struct {
	Phase    Phase
	Settings prefs.Settings
	ActiveID string
}

// Option customises a Session.
type Option func(*Session)

// WithClock overrides the clock used to decide what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTimerDuration sets the focus timer's default duration.
func WithTimerDuration(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.timer = timer.New(d)
		}
	}
}

// WithRand sets the source used for placeholders and the random font.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithDefaults sets the settings used for keys missing from the prefs store.
func WithDefaults(settings prefs.Settings) Option {
	return func(s *Session) {
		s.state.Settings = settings
	}
}

// Session is the single writer for a journal directory.
type Session struct {
	store  store.Persistence
	prefs  prefs.Store
	sharer share.Sharer
	log    *zap.Logger
	now    func() time.Time
	rng    *rand.Rand
	timer  *timer.Timer

	placeholder string

	// switchMu serializes Select, NewEntry and Delete.
	switchMu sync.Mutex

	mu        sync.Mutex
	state     State
	entries   []*entry.Entry
	buffer    string
	dirty     bool
	revision  uint64
	written   map[string]uint64
	lastSaved time.Time

	locksMu sync.Mutex
	locks   map[string]*semaphore.Weighted
}

// NewSession wires a session to its collaborators. Nil prefs, sharer or
// logger fall back to an in-memory store, no sharing and a no-op logger.
func NewSession(p store.Persistence, ps prefs.Store, sh share.Sharer, log *zap.Logger, opts ...Option) *Session {
	if ps == nil {
		ps = prefs.NewMemoryStore(nil)
	}
	if sh == nil {
		sh = share.None{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		store:   p,
		prefs:   ps,
		sharer:  sh,
		log:     log,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		timer:   timer.New(timer.DefaultDuration),
		state:   State{Phase: Bootstrapping, Settings: prefs.Defaults(prefs.Light)},
		written: make(map[string]uint64),
		locks:   make(map[string]*semaphore.Weighted),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.placeholder = prefs.Placeholder(s.rng)
	return s
}

// Bootstrap loads preferences and entries and picks the entry to edit.
func (s *Session) Bootstrap(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.state.Phase = Bootstrapping
	defaults := s.state.Settings
	s.mu.Unlock()

	settings, err := prefs.Load(s.prefs, defaults)
	if err != nil {
		s.log.Warn("loading preferences", zap.Error(err))
	}

	if err := s.store.EnsureDirectory(); err != nil {
		s.log.Error("preparing journal directory", zap.Error(err))
	}
	entries := s.store.List(ctx)

	var (
		active  *entry.Entry
		content string
	)
	if len(entries) == 0 {
		active = s.create(true)
		if active != nil {
			content = entry.WelcomeContent
			entries = append(entries, active)
		}
	} else if e := blankFromDay(entries, s.now()); e != nil {
		active = e
	} else if len(entries) == 1 && entries[0].IsWelcome() {
		active = entries[0]
	} else {
		active = s.create(false)
		if active != nil {
			content = entry.BlankContent
			entries = append([]*entry.Entry{active}, entries...)
		}
	}

	if active != nil && content == "" {
		content, err = s.store.Read(active.Filename)
		if err != nil {
			s.log.Warn("loading entry", zap.String("filename", active.Filename), zap.Error(err))
			content = ""
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.state.Settings = settings
	s.state.ActiveID = ""
	if active != nil {
		s.state.ActiveID = active.ID
	}
	s.buffer = content
	s.dirty = false
	s.revision++
	s.state.Phase = Editing
	s.log.Debug("session ready",
		zap.Int("entries", len(entries)),
		zap.String("active", s.state.ActiveID))
	return nil
}

// blankFromDay returns the newest entry created on the same day as now whose
// content is blank.
func blankFromDay(entries []*entry.Entry, now time.Time) *entry.Entry {
	for _, e := range entries {
		if e.Created.SameDay(now) && e.IsBlank() {
			return e
		}
	}
	return nil
}

func (s *Session) create(welcome bool) *entry.Entry {
	e, err := s.store.Create(welcome)
	if err != nil {
		s.log.Error("creating entry", zap.Bool("welcome", welcome), zap.Error(err))
		return nil
	}
	return e
}

// SetBuffer replaces the text of entry id. Text edited against an entry that
// is no longer active is dropped and SetBuffer reports false. Nothing touches
// disk until the next autosave.
func (s *Session) SetBuffer(id, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" || id != s.state.ActiveID {
		return false
	}
	if text == s.buffer {
		return true
	}
	s.buffer = text
	s.dirty = true
	s.revision++
	return true
}

// Buffer returns the editor text.
func (s *Session) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// Dirty reports whether the buffer has unsaved changes.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// LastSaved is when the buffer last reached disk.
func (s *Session) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

// SaveResult describes one autosave attempt.
type SaveResult struct {
	Filename string
	Saved    bool
	Err      error
}

// Autosave writes the buffer if it changed. A write already in flight for the
// same file makes this tick a no-op.
func (s *Session) Autosave(ctx context.Context) bool {
	return s.AutosaveResult(ctx).Saved
}

// AutosaveResult is Autosave reporting the file it targeted and the write
// error, if any.
func (s *Session) AutosaveResult(ctx context.Context) SaveResult {
	if ctx.Err() != nil {
		return SaveResult{}
	}
	s.mu.Lock()
	active := s.activeLocked()
	if active == nil || !s.dirty {
		s.mu.Unlock()
		return SaveResult{}
	}
	filename := active.Filename
	s.mu.Unlock()

	res := SaveResult{Filename: filename}
	sem := s.lockFor(filename)
	if !sem.TryAcquire(1) {
		s.log.Debug("autosave skipped, write in flight", zap.String("filename", filename))
		return res
	}
	defer sem.Release(1)

	content, rev, ok := s.pending(filename)
	if !ok {
		return res
	}
	res.Saved, res.Err = s.persist(filename, content, rev)
	if res.Err != nil {
		s.log.Warn("autosave failed", zap.String("filename", filename), zap.Error(res.Err))
	}
	return res
}

// Save blocks until the buffer is on disk.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	active := s.activeLocked()
	s.mu.Unlock()
	if active == nil {
		return nil
	}
	return s.flush(ctx, active.Filename)
}

// flush waits for any write on filename, then saves the buffer if filename is
// still active and dirty.
func (s *Session) flush(ctx context.Context, filename string) error {
	sem := s.lockFor(filename)
	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer sem.Release(1)

	content, rev, ok := s.pending(filename)
	if !ok {
		return nil
	}
	_, err := s.persist(filename, content, rev)
	return err
}

// pending snapshots the buffer when filename is active and has unsaved
// edits. The caller holds the filename's semaphore.
func (s *Session) pending(filename string) (string, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.activeLocked()
	if active == nil || active.Filename != filename || !s.dirty {
		return "", 0, false
	}
	return s.buffer, s.revision, true
}

// persist writes content and updates the matching preview. A snapshot older
// than the last one written to filename is skipped. The caller holds the
// filename's semaphore.
func (s *Session) persist(filename, content string, rev uint64) (bool, error) {
	s.mu.Lock()
	stale := rev < s.written[filename]
	s.mu.Unlock()
	if stale {
		s.log.Debug("dropping stale write", zap.String("filename", filename), zap.Uint64("revision", rev))
		return false, nil
	}

	if err := s.store.Write(filename, content); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written[filename] = rev
	for _, e := range s.entries {
		if e.Filename == filename {
			e.SetContent(content)
		}
	}
	if active := s.activeLocked(); active != nil && active.Filename == filename && s.revision == rev {
		s.dirty = false
	}
	s.lastSaved = s.now()
	return true, nil
}

// Select saves the current entry and loads id into the buffer.
func (s *Session) Select(ctx context.Context, id string) error {
	s.switchMu.Lock()
	defer s.switchMu.Unlock()

	s.mu.Lock()
	target := s.findLocked(id)
	if target == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	prev := s.activeLocked()
	s.mu.Unlock()
	if prev != nil && prev.ID == target.ID {
		return nil
	}

	s.saveActive(ctx, prev)
	content, err := s.store.Read(target.Filename)
	if err != nil {
		s.log.Warn("loading entry", zap.String("filename", target.Filename), zap.Error(err))
		content = ""
	}
	s.handOff(ctx, prev, func() { s.activateLocked(target.ID, content) })
	return err
}

// saveActive flushes prev ahead of a switch.
func (s *Session) saveActive(ctx context.Context, prev *entry.Entry) {
	if prev == nil {
		return
	}
	if err := s.flush(ctx, prev.Filename); err != nil {
		s.log.Warn("saving before switch", zap.String("filename", prev.Filename), zap.Error(err))
	}
}

// handOff runs swap under s.mu once prev has no unsaved edits, saving again
// when edits landed after the last flush. Once swap ran, SetBuffer calls made
// against prev are dropped.
func (s *Session) handOff(ctx context.Context, prev *entry.Entry, swap func()) {
	for attempt := 1; ; attempt++ {
		s.mu.Lock()
		unsaved := prev != nil && s.dirty && s.state.ActiveID == prev.ID
		if !unsaved || attempt > handOffAttempts {
			if unsaved {
				s.log.Warn("switching with unsaved edits", zap.String("filename", prev.Filename))
			}
			swap()
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
		s.saveActive(ctx, prev)
	}
}

func (s *Session) activate(id, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activateLocked(id, content)
}

func (s *Session) activateLocked(id, content string) {
	s.state.ActiveID = id
	s.buffer = content
	s.dirty = false
	s.revision++
}

// Delete removes id from disk and the list. Deleting the active entry moves
// the editor to another entry, creating a blank one when none are left.
func (s *Session) Delete(ctx context.Context, id string) error {
	s.switchMu.Lock()
	defer s.switchMu.Unlock()

	s.mu.Lock()
	target := s.findLocked(id)
	if target == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	wasActive := s.state.ActiveID == target.ID
	before := append([]*entry.Entry(nil), s.entries...)
	s.mu.Unlock()

	sem := s.lockFor(target.Filename)
	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	err := s.store.Delete(target.Filename)
	sem.Release(1)
	if err != nil {
		s.log.Warn("deleting entry", zap.String("filename", target.Filename), zap.Error(err))
		return err
	}
	s.dropLock(target.Filename)

	s.mu.Lock()
	s.entries = without(s.entries, target.ID)
	if !wasActive {
		s.mu.Unlock()
		return nil
	}
	s.state.ActiveID = ""
	s.buffer = ""
	s.dirty = false
	s.revision++
	var candidates []*entry.Entry
	for _, e := range before {
		if e.ID != target.ID && s.findLocked(e.ID) != nil {
			candidates = append(candidates, e)
		}
	}
	s.mu.Unlock()

	for _, next := range candidates {
		content, err := s.store.Read(next.Filename)
		if err != nil {
			s.log.Warn("loading entry", zap.String("filename", next.Filename), zap.Error(err))
			continue
		}
		s.activate(next.ID, content)
		return nil
	}
	s.newBlank()
	return nil
}

// NewEntry saves the current entry and starts a blank one.
func (s *Session) NewEntry(ctx context.Context) (*entry.Entry, error) {
	s.switchMu.Lock()
	defer s.switchMu.Unlock()

	s.mu.Lock()
	prev := s.activeLocked()
	s.mu.Unlock()

	s.saveActive(ctx, prev)
	e, err := s.store.Create(false)
	if err != nil {
		s.log.Error("creating entry", zap.Error(err))
		return nil, err
	}
	s.handOff(ctx, prev, func() { s.insertLocked(e) })
	return clone(e), nil
}

func (s *Session) newBlank() {
	if e := s.create(false); e != nil {
		s.mu.Lock()
		s.insertLocked(e)
		s.mu.Unlock()
	}
}

func (s *Session) insertLocked(e *entry.Entry) {
	s.entries = append([]*entry.Entry{e}, s.entries...)
	s.activateLocked(e.ID, entry.BlankContent)
}

// Reload re-lists entries from disk. The active entry stays listed and keeps
// its in-memory preview while it has unsaved edits.
func (s *Session) Reload(ctx context.Context) {
	list := s.store.List(ctx)
	if ctx.Err() != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if active := s.activeLocked(); active != nil {
		found := false
		for _, e := range list {
			if e.ID != active.ID {
				continue
			}
			found = true
			if s.dirty {
				e.SetContent(s.buffer)
			}
		}
		if !found {
			list = append(list, active)
			entry.Sort(list)
		}
	}
	s.entries = list
}

// Entries is a snapshot of the list, newest first.
func (s *Session) Entries() []*entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entry.Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = clone(e)
	}
	return out
}

// Active is a snapshot of the entry being edited.
func (s *Session) Active() (*entry.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.activeLocked()
	if e == nil {
		return nil, false
	}
	return clone(e), true
}

// Sections groups the entries matching query by month.
func (s *Session) Sections(query string) []collection.Section {
	return collection.Sections(s.Entries(), query)
}

// State is a snapshot of the application state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Settings returns the display settings.
func (s *Session) Settings() prefs.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings
}

// ToggleColorScheme flips light and dark and persists the result.
func (s *Session) ToggleColorScheme() prefs.ColorScheme {
	s.mu.Lock()
	scheme := s.state.Settings.ColorScheme.Toggle()
	s.state.Settings.ColorScheme = scheme
	s.mu.Unlock()
	if err := prefs.SaveColorScheme(s.prefs, scheme); err != nil {
		s.log.Warn("saving color scheme", zap.Error(err))
	}
	return scheme
}

// SetFontSize changes the font size; size must be one of prefs.FontSizes.
func (s *Session) SetFontSize(size int) error {
	if !prefs.ValidFontSize(size) {
		return fmt.Errorf("%w: %d", ErrInvalidFontSize, size)
	}
	s.mu.Lock()
	s.state.Settings.FontSize = size
	s.mu.Unlock()
	if err := prefs.SaveFontSize(s.prefs, size); err != nil {
		s.log.Warn("saving font size", zap.Error(err))
	}
	return nil
}

// StepFontSize moves delta places through prefs.FontSizes, stopping at
// either end.
func (s *Session) StepFontSize(delta int) int {
	current := s.Settings().FontSize
	idx := -1
	for i, size := range prefs.FontSizes {
		if size == current {
			idx = i
		}
	}
	if idx < 0 {
		idx = 0
		for i, size := range prefs.FontSizes {
			if size <= current {
				idx = i
			}
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(prefs.FontSizes) {
		idx = len(prefs.FontSizes) - 1
	}
	size := prefs.FontSizes[idx]
	if size != current {
		_ = s.SetFontSize(size)
	}
	return size
}

// SetFont selects a font option. The random option picks a concrete font and
// remembers it.
func (s *Session) SetFont(value string) error {
	s.mu.Lock()
	selected, random, err := prefs.ChooseFont(value, s.rng)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state.Settings.SelectedFont = selected
	s.state.Settings.CurrentRandomFont = random
	s.mu.Unlock()
	if err := prefs.SaveFont(s.prefs, selected, random); err != nil {
		s.log.Warn("saving font", zap.Error(err))
	}
	return nil
}

// CycleFont moves to the next font option.
func (s *Session) CycleFont() prefs.Settings {
	if err := s.SetFont(s.Settings().NextFontOption()); err != nil {
		s.log.Warn("cycling font", zap.Error(err))
	}
	return s.Settings()
}

// Share exports the active entry and hands it to the sharer. An unavailable
// sharer is not an error.
func (s *Session) Share(ctx context.Context) error {
	active, ok := s.Active()
	if !ok {
		return nil
	}
	if err := s.flush(ctx, active.Filename); err != nil {
		s.log.Warn("saving before share", zap.Error(err))
	}
	err := s.share(ctx, active.Filename)
	if errors.Is(err, share.ErrUnavailable) {
		s.log.Debug("sharing unavailable")
		return nil
	}
	if err != nil {
		s.log.Warn("sharing entry", zap.String("filename", active.Filename), zap.Error(err))
	}
	return err
}

func (s *Session) share(ctx context.Context, filename string) error {
	if !s.sharer.Available(ctx) {
		return share.ErrUnavailable
	}
	path, err := s.store.Export(filename)
	if err != nil {
		return err
	}
	return s.sharer.Share(ctx, share.Request{
		Path:     path,
		MIMEType: share.MIMEMarkdown,
		Title:    share.DialogTitle,
	})
}

// Placeholder is the prompt shown on an empty page, fixed for the session.
func (s *Session) Placeholder() string {
	return s.placeholder
}

// Timer is the focus timer.
func (s *Session) Timer() *timer.Timer {
	return s.timer
}

// Store is the persistence the session writes through.
func (s *Session) Store() store.Persistence {
	return s.store
}

func (s *Session) activeLocked() *entry.Entry {
	if s.state.ActiveID == "" {
		return nil
	}
	return s.findLocked(s.state.ActiveID)
}

func (s *Session) findLocked(id string) *entry.Entry {
	for _, e := range s.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (s *Session) lockFor(filename string) *semaphore.Weighted {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	sem, ok := s.locks[filename]
	if !ok {
		sem = semaphore.NewWeighted(1)
		s.locks[filename] = sem
	}
	return sem
}

func (s *Session) dropLock(filename string) {
	s.locksMu.Lock()
	delete(s.locks, filename)
	s.locksMu.Unlock()

	s.mu.Lock()
	delete(s.written, filename)
	s.mu.Unlock()
}

func without(entries []*entry.Entry, id string) []*entry.Entry {
	out := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func clone(e *entry.Entry) *entry.Entry {
	cp := *e
	return &cp
}

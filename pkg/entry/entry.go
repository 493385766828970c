// Package entry defines a single piece of writing and the filename convention
// used to store it.
package entry

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// Ext is the extension every entry file carries.
	Ext = ".md"

	// PreviewLength is the number of characters kept in a preview before the
	// ellipsis is appended.
	PreviewLength = 30

	welcomeMarker = "Welcome to Freewrite"
)

// WelcomeContent seeds the very first entry of a fresh journal.
const WelcomeContent = "\n\nWelcome to Freewrite.\n\nThis is a simple, distraction-free writing app to help you focus.\n\nSet a timer, pick a font size, and just start writing.\n\nYour entries are saved automatically and can be accessed from the history sidebar."

// BlankContent seeds every other new entry.
const BlankContent = "\n\n"

var (
	idPattern   = regexp.MustCompile(`\[(.*?)\]`)
	datePattern = regexp.MustCompile(`\[(\d{4}-\d{2}-\d{2}-\d{2}-\d{2}-\d{2})\]`)
)

// Entry is one journal file. Content lives on disk; Preview is derived from it.
type Entry struct {
	ID       string    `json:"id"`
	Created  Timestamp `json:"created"`
	Filename string    `json:"filename"`
	Preview  string    `json:"preview"`
}

// New builds an entry for id created at the given time.
func New(id string, created time.Time) *Entry {
	created = created.Truncate(time.Second)
	return &Entry{
		ID:       id,
		Created:  Timestamp{Time: created},
		Filename: FormatFilename(id, created),
	}
}

// NewID returns a fresh entry identifier.
func NewID() string {
	return uuid.NewString()
}

// FormatFilename renders `[<id>]-[<YYYY-MM-DD-HH-mm-ss>].md`.
func FormatFilename(id string, created time.Time) string {
	return fmt.Sprintf("[%s]-[%s]%s", id, created.Format(FilenameLayout), Ext)
}

// ParseFilename extracts the id and creation time from an entry filename. ok
// is false for anything that is not an entry.
func ParseFilename(name string) (id string, created time.Time, ok bool) {
	if !strings.HasSuffix(name, Ext) || strings.ContainsAny(name, `/\`) {
		return "", time.Time{}, false
	}
	idMatch := idPattern.FindStringSubmatch(name)
	dateMatch := datePattern.FindStringSubmatch(name)
	if idMatch == nil || dateMatch == nil {
		return "", time.Time{}, false
	}
	t, err := time.ParseInLocation(FilenameLayout, dateMatch[1], time.Local)
	if err != nil {
		return "", time.Time{}, false
	}
	return idMatch[1], t, true
}

// FromFilename parses name into an entry without a preview.
func FromFilename(name string) (*Entry, bool) {
	id, created, ok := ParseFilename(name)
	if !ok {
		return nil, false
	}
	return &Entry{ID: id, Created: Timestamp{Time: created}, Filename: name}, true
}

// Preview collapses newlines to spaces, trims, and truncates to PreviewLength
// characters followed by "..." when the text is longer.
func Preview(content string) string {
	p := strings.TrimSpace(strings.ReplaceAll(content, "\n", " "))
	r := []rune(p)
	if len(r) > PreviewLength {
		return string(r[:PreviewLength]) + "..."
	}
	return p
}

// SetContent refreshes the preview from content.
func (e *Entry) SetContent(content string) {
	e.Preview = Preview(content)
}

// IsWelcome reports whether e is the seeded welcome entry.
func (e *Entry) IsWelcome() bool {
	return strings.Contains(e.Preview, welcomeMarker)
}

// IsBlank reports whether e has nothing written in it yet.
func (e *Entry) IsBlank() bool {
	return e.Preview == ""
}

// DisplayDate is the short sidebar date, e.g. "Jan 5".
func (e *Entry) DisplayDate() string {
	return e.Created.Format(DisplayLayout)
}

// Section is the month grouping title, e.g. "January 2026".
func (e *Entry) Section() string {
	return e.Created.Format(SectionLayout)
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s  %s", e.DisplayDate(), e.Preview)
}

// Sort orders entries newest first. Entries created in the same second are
// ordered by id so the result is stable.
func Sort(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left, right := entries[i], entries[j]
		if left == nil || right == nil {
			return left != nil
		}
		if left.Created.Equal(right.Created.Time) {
			return left.ID < right.ID
		}
		return left.Created.After(right.Created.Time)
	})
}

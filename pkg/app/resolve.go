package app

import (
	"strings"

	"tableflip.dev/freewrite/pkg/entry"
)

// Find resolves ref against entries. ref may be an id, a filename, or a
// prefix of exactly one id.
func Find(entries []*entry.Entry, ref string) (*entry.Entry, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, false
	}
	for _, e := range entries {
		if e.ID == ref || e.Filename == ref {
			return e, true
		}
	}
	var match *entry.Entry
	for _, e := range entries {
		if strings.HasPrefix(e.ID, ref) {
			if match != nil {
				return nil, false
			}
			match = e
		}
	}
	return match, match != nil
}

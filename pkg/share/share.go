// Package share hands exported entries to something outside freewrite.
package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

const (
	// MIMEMarkdown is the type every entry is shared as.
	MIMEMarkdown = "text/markdown"
	// DialogTitle titles the share prompt.
	DialogTitle = "Share your writing"
)

// ErrUnavailable is returned when no sharing target can be used.
var ErrUnavailable = errors.New("share: unavailable")

// Request describes one exported file.
type Request struct {
	Path     string
	MIMEType string
	Title    string
}

// Sharer is the sharing collaborator. Available must be checked before Share.
type Sharer interface {
	Available(ctx context.Context) bool
	Share(ctx context.Context, req Request) error
}

// Clipboard copies the exported file's text to the system clipboard.
type Clipboard struct{}

func (Clipboard) Available(context.Context) bool {
	return !clipboard.Unsupported
}

func (c Clipboard) Share(ctx context.Context, req Request) error {
	if !c.Available(ctx) {
		return ErrUnavailable
	}
	data, err := os.ReadFile(req.Path)
	if err != nil {
		return fmt.Errorf("share: read %s: %w", req.Path, err)
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		return fmt.Errorf("share: clipboard: %w", err)
	}
	return nil
}

// Printer writes the exported path so the user can pick it up by hand.
type Printer struct {
	Out io.Writer
}

func (p Printer) Available(context.Context) bool {
	return p.Out != nil
}

func (p Printer) Share(ctx context.Context, req Request) error {
	if !p.Available(ctx) {
		return ErrUnavailable
	}
	_, err := fmt.Fprintf(p.Out, "%s (%s): %s\n", req.Title, req.MIMEType, req.Path)
	return err
}

// None never shares.
type None struct{}

func (None) Available(context.Context) bool { return false }

func (None) Share(context.Context, Request) error { return ErrUnavailable }

// Package mcp provides the Model Context Protocol server integration for freewrite.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/collection"
	"tableflip.dev/freewrite/pkg/entry"
	"tableflip.dev/freewrite/pkg/store"
)

// Service coordinates persistence-backed operations that are shared by the MCP server.
type Service struct {
	Persistence store.Persistence
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Preview     string `json:"preview"`
	Date        string `json:"date"`
	Section     string `json:"section"`
	CreatedISO  string `json:"created"`
	CreatedUnix int64  `json:"createdUnix"`
	Content     string `json:"content,omitempty"`
}

// SectionDTO is one month of entries.
type SectionDTO struct {
	Title   string     `json:"title"`
	Count   int        `json:"count"`
	Entries []EntryDTO `json:"entries"`
}

// NewService builds a service wrapper using the provided persistence layer.
func NewService(p store.Persistence) *Service {
	return &Service{Persistence: p}
}

// ListEntries returns every entry, newest first.
func (s *Service) ListEntries(ctx context.Context) ([]EntryDTO, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	return toDTOs(s.Persistence.List(ctx)), nil
}

// SearchEntries groups the entries matching query by month.
func (s *Service) SearchEntries(ctx context.Context, query string) ([]SectionDTO, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	sections := collection.Sections(s.Persistence.List(ctx), query)
	out := make([]SectionDTO, 0, len(sections))
	for _, sec := range sections {
		out = append(out, SectionDTO{
			Title:   sec.Title,
			Count:   len(sec.Entries),
			Entries: toDTOs(sec.Entries),
		})
	}
	return out, nil
}

// EntryByID returns an entry with its content. ref may be an id, filename or
// unique id prefix.
func (s *Service) EntryByID(ctx context.Context, ref string) (*EntryDTO, error) {
	e, err := s.find(ctx, ref)
	if err != nil {
		return nil, err
	}
	content, err := s.Persistence.Read(e.Filename)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	dto.Content = content
	return &dto, nil
}

// CreateEntry starts a new entry, optionally seeded with content.
func (s *Service) CreateEntry(ctx context.Context, content string) (*EntryDTO, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	if err := s.Persistence.EnsureDirectory(); err != nil {
		return nil, err
	}
	e, err := s.Persistence.Create(false)
	if err != nil {
		return nil, err
	}
	body := entry.BlankContent
	if strings.TrimSpace(content) != "" {
		body = entry.BlankContent + content
		if err := s.Persistence.Write(e.Filename, body); err != nil {
			return nil, err
		}
		e.SetContent(body)
	}
	dto := toDTO(e)
	dto.Content = body
	return &dto, nil
}

// WriteEntry replaces or appends to an entry's content.
func (s *Service) WriteEntry(ctx context.Context, ref, content string, appendText bool) (*EntryDTO, error) {
	e, err := s.find(ctx, ref)
	if err != nil {
		return nil, err
	}
	body := content
	if appendText {
		existing, err := s.Persistence.Read(e.Filename)
		if err != nil {
			return nil, err
		}
		body = existing + content
	}
	if err := s.Persistence.Write(e.Filename, body); err != nil {
		return nil, err
	}
	e.SetContent(body)
	dto := toDTO(e)
	dto.Content = body
	return &dto, nil
}

func (s *Service) find(ctx context.Context, ref string) (*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	if strings.TrimSpace(ref) == "" {
		return nil, errors.New("entry id is required")
	}
	e, ok := app.Find(s.Persistence.List(ctx), ref)
	if !ok {
		return nil, fmt.Errorf("%w: %s", app.ErrEntryNotFound, ref)
	}
	return e, nil
}

func toDTOs(entries []*entry.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e))
	}
	return out
}

func toDTO(e *entry.Entry) EntryDTO {
	return EntryDTO{
		ID:          e.ID,
		Filename:    e.Filename,
		Preview:     e.Preview,
		Date:        e.DisplayDate(),
		Section:     e.Section(),
		CreatedISO:  entry.FormatTime(e.Created.Time),
		CreatedUnix: e.Created.Unix(),
	}
}

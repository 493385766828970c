package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/freewrite/pkg/entry"
)

// Persistence is the durable mapping between entries and their files.
type Persistence interface {
	EnsureDirectory() error
	List(ctx context.Context) []*entry.Entry
	Create(welcome bool) (*entry.Entry, error)
	Read(filename string) (string, error)
	Write(filename, content string) error
	Delete(filename string) error
	Export(filename string) (string, error)
	Watch(ctx context.Context) (<-chan Event, error)
	BasePath() string
}

// Option customises a Persistence created by Load.
type Option func(*persistence)

// WithClock overrides the clock used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(p *persistence) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger sets the logger used for skipped or unreadable files.
func WithLogger(log *zap.Logger) Option {
	return func(p *persistence) {
		if log != nil {
			p.log = log
		}
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, fmt.Errorf("%w: base path unknown", ErrDirectoryInit)
	}
	exportPath := cfg.ExportPath()
	if exportPath == "" {
		exportPath = filepath.Join(os.TempDir(), "freewrite-share")
	}

	p := &persistence{
		// Entries live flat in basePath; the key is the filename. Other
		// processes write here too, so nothing is cached.
		d: diskv.New(diskv.Options{
			BasePath: basePath,
			TempDir:  filepath.Join(basePath, tempDir),
			PathPerm: 0o755,
			FilePerm: 0o644,
		}),
		exports: diskv.New(diskv.Options{
			BasePath: exportPath,
			PathPerm: 0o755,
			FilePerm: 0o644,
		}),
		basePath:   basePath,
		exportPath: exportPath,
		now:        time.Now,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

const tempDir = ".tmp"

type persistence struct {
	d          *diskv.Diskv
	exports    *diskv.Diskv
	basePath   string
	exportPath string
	now        func() time.Time
	log        *zap.Logger
}

func (p *persistence) BasePath() string {
	return p.basePath
}

func (p *persistence) EnsureDirectory() error {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDirectoryInit, p.basePath, err)
	}
	return nil
}

func (p *persistence) List(ctx context.Context) []*entry.Entry {
	all := make([]*entry.Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		e, ok := entry.FromFilename(key)
		if !ok {
			continue
		}
		content, err := p.Read(key)
		if err != nil {
			p.log.Warn("skipping unreadable entry", zap.String("filename", key), zap.Error(err))
			continue
		}
		e.SetContent(content)
		all = append(all, e)
	}
	entry.Sort(all)
	return all
}

func (p *persistence) Create(welcome bool) (*entry.Entry, error) {
	e := entry.New(entry.NewID(), p.now())
	content := entry.BlankContent
	if welcome {
		content = entry.WelcomeContent
	}
	if err := p.Write(e.Filename, content); err != nil {
		return nil, err
	}
	e.SetContent(content)
	return e, nil
}

func (p *persistence) Read(filename string) (string, error) {
	if _, _, ok := entry.ParseFilename(filename); !ok {
		return "", fmt.Errorf("%w: %q is not an entry filename", ErrStorageRead, filename)
	}
	val, err := p.d.Read(filename)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrStorageRead, filename, err)
	}
	return string(val), nil
}

func (p *persistence) Write(filename, content string) error {
	if _, _, ok := entry.ParseFilename(filename); !ok {
		return fmt.Errorf("%w: %q is not an entry filename", ErrStorageWrite, filename)
	}
	if err := p.d.Write(filename, []byte(content)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStorageWrite, filename, err)
	}
	return nil
}

func (p *persistence) Delete(filename string) error {
	if _, _, ok := entry.ParseFilename(filename); !ok {
		return fmt.Errorf("%w: %q is not an entry filename", ErrStorageDelete, filename)
	}
	if err := p.d.Erase(filename); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStorageDelete, filename, err)
	}
	return nil
}

func (p *persistence) Export(filename string) (string, error) {
	if _, _, ok := entry.ParseFilename(filename); !ok {
		return "", fmt.Errorf("%w: %q is not an entry filename", ErrStorageRead, filename)
	}
	r, err := p.d.ReadStream(filename, true)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrStorageRead, filename, err)
	}
	defer r.Close()
	if err := p.exports.WriteStream(filename, r, true); err != nil {
		return "", fmt.Errorf("%w: export %s: %w", ErrStorageWrite, filename, err)
	}
	path, err := filepath.Abs(filepath.Join(p.exportPath, filename))
	if err != nil {
		return "", fmt.Errorf("%w: export %s: %w", ErrStorageWrite, filename, err)
	}
	return path, nil
}

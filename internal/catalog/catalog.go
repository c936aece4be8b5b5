// Package catalog discovers save files on disk and keeps them in a registry
// keyed by a stable ID, so that the CLI and the servers can pick games by
// name without knowing where they live.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/mio-arcade/internal/mio"
	"github.com/vovakirdan/mio-arcade/internal/storage"
)

// ErrNotFound is returned when no game has the requested ID.
var ErrNotFound = errors.New("catalog: game not found")

// DefaultExtensions are the save file extensions scanned when none are given.
var DefaultExtensions = []string{".bin", ".mio"}

// Entry describes one discovered save file.
type Entry struct {
	ID      string
	Title   string
	Length  mio.Length
	Objects int
	Path    string
	Hash    string // Content key shared with the save library
	Size    int64
	ModTime time.Time
}

// Catalog is a registry of games sorted by ID. It is safe for concurrent
// use, since SSH sessions share one catalog.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

// Scan recursively loads every save file under root with one of exts.
// Unreadable files are skipped.
func Scan(root string, exts []string) (*Catalog, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	c := New()

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !supported(path, exts) {
			return nil
		}
		entry, _, err := LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		c.Add(entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: cannot walk %s: %w", root, err)
	}
	return c, nil
}

func supported(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// LoadFile reads and decodes a single save file.
func LoadFile(path string) (Entry, *mio.GameScript, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, nil, fmt.Errorf("catalog: cannot stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, nil, fmt.Errorf("catalog: cannot read %s: %w", path, err)
	}
	script := mio.Decode(data)

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	title := script.Name
	if title == "" {
		title = base
	}
	return Entry{
		ID:      Slug(base),
		Title:   title,
		Length:  script.Length,
		Objects: len(script.ActiveObjects()),
		Path:    path,
		Hash:    storage.Hash(data),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, script, nil
}

// Slug lowercases name and collapses everything but letters and digits to
// single dashes.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Add registers e, replacing any entry with the same ID. IDs that collide
// with a different path get a numeric suffix.
func (c *Catalog) Add(e Entry) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := e.ID
	for n := 2; ; n++ {
		prev, exists := c.entries[id]
		if !exists || prev.Path == e.Path {
			break
		}
		id = fmt.Sprintf("%s-%d", e.ID, n)
	}
	e.ID = id
	c.entries[id] = e
	return e
}

// List returns every entry, sorted by ID.
func (c *Catalog) List() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id string) (Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return e, nil
}

// Open decodes the save file behind id.
func (c *Catalog) Open(id string) (*mio.GameScript, error) {
	e, err := c.Lookup(id)
	if err != nil {
		return nil, err
	}
	_, script, err := LoadFile(e.Path)
	return script, err
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

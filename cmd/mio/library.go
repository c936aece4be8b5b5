package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mio-arcade/internal/catalog"
	"github.com/vovakirdan/mio-arcade/internal/config"
	"github.com/vovakirdan/mio-arcade/internal/mio"
	"github.com/vovakirdan/mio-arcade/internal/platform/tui"
	"github.com/vovakirdan/mio-arcade/internal/storage"
)

// library joins the save directory with the saves imported into the
// database. Imported entries have no path.
type library struct {
	catalog *catalog.Catalog
	store   *storage.Store
	log     *log.Logger
}

// openLibrary scans the configured root. A missing root gives an empty
// directory listing.
func openLibrary(store *storage.Store, logger *log.Logger) *library {
	root := config.ExpandPath(cfg.Library.Root)
	c, err := catalog.Scan(root, cfg.Library.Extensions)
	if err != nil {
		logger.Debug("library not scanned", "root", root, "error", err)
		c = catalog.New()
	}
	lib := &library{catalog: c, store: store, log: logger}
	if store == nil {
		return lib
	}

	saves, err := store.ListSaves()
	if err != nil {
		logger.Warn("could not list imported saves", "error", err)
		return lib
	}
	known := make(map[string]bool)
	for _, e := range c.List() {
		known[e.Hash] = true
	}
	for _, s := range saves {
		if known[s.Hash] {
			continue
		}
		c.Add(catalog.Entry{
			ID:      catalog.Slug(s.Name) + "-" + s.Hash[:6],
			Title:   s.Name,
			Length:  parseLength(s.Length),
			Objects: s.Objects,
			Hash:    s.Hash,
			Size:    s.Size,
			ModTime: s.ImportedAt,
		})
	}
	return lib
}

func parseLength(s string) mio.Length {
	for _, l := range []mio.Length{mio.LengthShort, mio.LengthLong, mio.LengthBoss} {
		if l.String() == s {
			return l
		}
	}
	return mio.LengthShort
}

// List implements tui.Library.
func (l *library) List() []catalog.Entry {
	return l.catalog.List()
}

// Open implements tui.Library.
func (l *library) Open(id string) (*mio.GameScript, error) {
	e, err := l.catalog.Lookup(id)
	if err != nil {
		return nil, err
	}
	script, err := l.decode(e)
	if err != nil {
		return nil, err
	}
	logWarnings(l.log, e.Title, script)
	return script, nil
}

func (l *library) decode(e catalog.Entry) (*mio.GameScript, error) {
	if e.Path != "" {
		_, script, err := catalog.LoadFile(e.Path)
		return script, err
	}
	if l.store == nil {
		return nil, fmt.Errorf("%w: %q", catalog.ErrNotFound, e.ID)
	}
	data, err := l.store.LoadSave(e.Hash)
	if err != nil {
		return nil, err
	}
	return mio.Decode(data), nil
}

// Resolve finds a save by file path, library ID or imported hash prefix.
func (l *library) Resolve(arg string) (tui.Game, error) {
	if info, err := os.Stat(arg); err == nil && info.Mode().IsRegular() {
		e, script, err := catalog.LoadFile(arg)
		if err != nil {
			return tui.Game{}, err
		}
		logWarnings(l.log, e.Title, script)
		return tui.Game{Title: e.Title, Hash: e.Hash, Script: script}, nil
	}

	e, err := l.catalog.Lookup(arg)
	if err != nil {
		var found bool
		e, found = l.byHashPrefix(arg)
		if !found {
			return tui.Game{}, err
		}
	}
	script, err := l.Open(e.ID)
	if err != nil {
		return tui.Game{}, err
	}
	return tui.Game{Title: e.Title, Hash: e.Hash, Script: script}, nil
}

// byHashPrefix matches an unambiguous prefix of at least 6 hex digits.
func (l *library) byHashPrefix(prefix string) (catalog.Entry, bool) {
	if len(prefix) < 6 {
		return catalog.Entry{}, false
	}
	var match catalog.Entry
	n := 0
	for _, e := range l.catalog.List() {
		if strings.HasPrefix(e.Hash, prefix) {
			match = e
			n++
		}
	}
	return match, n == 1
}

// logWarnings reports decode warnings of a save.
func logWarnings(logger *log.Logger, title string, script *mio.GameScript) {
	for _, w := range script.Warnings {
		logger.Warn("decode", "game", title, "warning", w.String())
	}
}

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/mio-arcade/internal/mio"
)

func writeSave(t *testing.T, path, name string, length byte) {
	t.Helper()
	data := make([]byte, mio.SaveSize)
	copy(data[0x1C:], name)
	data[0xE605] = length
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeSave(t, filepath.Join(root, "Catch The Fish.bin"), "CATCH!", 0x01)
	writeSave(t, filepath.Join(root, "nested", "boss.MIO"), "", 0x02)
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Scan(root, nil)
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}
	list := c.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 games, got %d", len(list))
	}
	if list[0].ID != "boss" || list[1].ID != "catch-the-fish" {
		t.Errorf("expected sorted IDs [boss catch-the-fish], got [%s %s]", list[0].ID, list[1].ID)
	}
	if list[0].Title != "boss" {
		t.Errorf("expected untitled save to use file name, got %q", list[0].Title)
	}
	if list[1].Title != "CATCH!" || list[1].Length != mio.LengthLong {
		t.Errorf("unexpected entry %+v", list[1])
	}
	if len(list[0].Hash) != 64 || list[0].Hash == list[1].Hash {
		t.Errorf("expected distinct sha256 hashes, got %q and %q", list[0].Hash, list[1].Hash)
	}
	if list[1].Size != mio.SaveSize {
		t.Errorf("expected size %d, got %d", mio.SaveSize, list[1].Size)
	}

	script, err := c.Open("boss")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if script.Length != mio.LengthBoss {
		t.Errorf("expected boss length, got %v", script.Length)
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "none"), nil); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestLookupNotFound(t *testing.T) {
	_, err := New().Lookup("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddCollision(t *testing.T) {
	c := New()
	a := c.Add(Entry{ID: "game", Path: "/a/game.bin"})
	b := c.Add(Entry{ID: "game", Path: "/b/game.bin"})
	again := c.Add(Entry{ID: "game", Path: "/a/game.bin"})

	if a.ID != "game" || b.ID != "game-2" || again.ID != "game" {
		t.Errorf("unexpected IDs %q %q %q", a.ID, b.ID, again.ID)
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", c.Len())
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Catch The Fish", "catch-the-fish"},
		{"  --Boss!! 2--", "boss-2"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestImportAndLoadSave(t *testing.T) {
	store := openStore(t)
	data := bytes.Repeat([]byte{0x00, 0x11, 0x00, 0x00}, 0x4000)

	entry, created, err := store.ImportSave(data, "HELLO", "Short", 3)
	if err != nil {
		t.Fatalf("ImportSave() failed: %v", err)
	}
	if !created {
		t.Error("expected first import to create a record")
	}
	if entry.Hash != Hash(data) || entry.Name != "HELLO" || entry.Objects != 3 {
		t.Errorf("unexpected entry %+v", entry)
	}
	if entry.Size != int64(len(data)) {
		t.Errorf("expected size %d, got %d", len(data), entry.Size)
	}
	if entry.Stored <= 0 || entry.Stored >= entry.Size {
		t.Errorf("expected compressed size below %d, got %d", entry.Size, entry.Stored)
	}

	_, created, err = store.ImportSave(data, "OTHER", "Long", 0)
	if err != nil {
		t.Fatalf("second ImportSave() failed: %v", err)
	}
	if created {
		t.Error("expected duplicate import to be ignored")
	}

	got, err := store.LoadSave(entry.Hash[:12])
	if err != nil {
		t.Fatalf("LoadSave() failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("loaded save does not match imported bytes")
	}

	list, err := store.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(list) != 1 || list[0].Name != "HELLO" {
		t.Errorf("expected one save named HELLO, got %+v", list)
	}
}

func TestSaveNotFound(t *testing.T) {
	store := openStore(t)

	if _, err := store.LoadSave("deadbeef"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadSave: expected ErrNotFound, got %v", err)
	}
	if _, err := store.Save("deadbeef"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Save: expected ErrNotFound, got %v", err)
	}
	if err := store.DeleteSave("deadbeef"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteSave: expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSave(t *testing.T) {
	store := openStore(t)
	entry, _, err := store.ImportSave([]byte("save"), "A", "Short", 1)
	if err != nil {
		t.Fatalf("ImportSave() failed: %v", err)
	}
	if err := store.DeleteSave(entry.Hash); err != nil {
		t.Fatalf("DeleteSave() failed: %v", err)
	}
	if _, err := store.LoadSave(entry.Hash); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected deleted save to be gone, got %v", err)
	}
}

func TestResults(t *testing.T) {
	store := openStore(t)

	plays := []Result{
		{SaveHash: "aaa", GameName: "A", Outcome: "won", Frames: 120, Seed: 1},
		{SaveHash: "aaa", GameName: "A", Outcome: "lost", Frames: 241, Seed: 2},
		{SaveHash: "aaa", GameName: "A", Outcome: "won", Frames: 90, Seed: 3, Player: "ssh-user"},
		{SaveHash: "bbb", GameName: "B", Outcome: "lost", Frames: 481, Seed: 4},
	}
	for _, r := range plays {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	recent, err := store.RecentResults("", 10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 4 {
		t.Fatalf("expected 4 results, got %d", len(recent))
	}
	if recent[0].Seed != 4 {
		t.Errorf("expected newest result first, got seed %d", recent[0].Seed)
	}

	onlyA, err := store.RecentResults("aaa", 2)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(onlyA) != 2 || onlyA[0].Player != "ssh-user" {
		t.Errorf("expected 2 results for A starting with the ssh play, got %+v", onlyA)
	}

	stats, err := store.AllGameStats()
	if err != nil {
		t.Fatalf("AllGameStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected stats for 2 games, got %d", len(stats))
	}
	a := stats[0]
	if a.SaveHash != "aaa" || a.Plays != 3 || a.Wins != 2 || a.BestFrames != 90 {
		t.Errorf("unexpected stats for A: %+v", a)
	}
	if rate := a.WinRate(); rate < 0.66 || rate > 0.67 {
		t.Errorf("WinRate() = %v, expected 2/3", rate)
	}
	if b := stats[1]; b.Wins != 0 || b.BestFrames != 0 {
		t.Errorf("expected no wins for B, got %+v", b)
	}

	if err := store.ClearResults("aaa"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}
	left, _ := store.RecentResults("", 10)
	if len(left) != 1 {
		t.Errorf("expected 1 result after clear, got %d", len(left))
	}
}

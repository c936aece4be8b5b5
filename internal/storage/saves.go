package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SaveEntry describes an imported save without its payload.
type SaveEntry struct {
	Hash       string
	Name       string
	Length     string
	Objects    int
	Size       int64 // uncompressed
	Stored     int64 // compressed
	ImportedAt time.Time
}

// ImportSave stores data compressed under its sha256. Importing the same
// bytes twice keeps the first record and reports created as false.
func (s *Store) ImportSave(data []byte, name, length string, objects int) (entry SaveEntry, created bool, err error) {
	hash := Hash(data)
	blob := s.enc.EncodeAll(data, nil)

	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO saves (hash, name, length, objects, size, data)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		hash, name, length, objects, len(data), blob,
	)
	if err != nil {
		return SaveEntry{}, false, fmt.Errorf("storage: cannot import save: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return SaveEntry{}, false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}

	entry, err = s.Save(hash)
	if err != nil {
		return SaveEntry{}, false, err
	}
	return entry, n > 0, nil
}

// Save returns the metadata of the save stored under hash.
func (s *Store) Save(hash string) (SaveEntry, error) {
	var e SaveEntry
	var importedAt any
	err := s.db.QueryRow(
		`SELECT hash, name, length, objects, size, LENGTH(data), imported_at
		 FROM saves WHERE hash = ?`,
		hash,
	).Scan(&e.Hash, &e.Name, &e.Length, &e.Objects, &e.Size, &e.Stored, &importedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SaveEntry{}, fmt.Errorf("%w: save %s", ErrNotFound, hash)
	}
	if err != nil {
		return SaveEntry{}, fmt.Errorf("storage: cannot query save: %w", err)
	}
	e.ImportedAt = parseTime(importedAt)
	return e, nil
}

// LoadSave returns the uncompressed bytes of the save stored under hash. A
// unique hash prefix is accepted.
func (s *Store) LoadSave(hash string) ([]byte, error) {
	rows, err := s.db.Query(`SELECT data FROM saves WHERE hash LIKE ? || '%' LIMIT 2`, hash)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query save: %w", err)
	}
	defer rows.Close()

	var blobs [][]byte
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		blobs = append(blobs, blob)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(blobs) {
	case 0:
		return nil, fmt.Errorf("%w: save %s", ErrNotFound, hash)
	case 1:
	default:
		return nil, fmt.Errorf("storage: ambiguous save prefix %q", hash)
	}

	data, err := s.dec.DecodeAll(blobs[0], nil)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot decompress save: %w", err)
	}
	return data, nil
}

// ListSaves returns every imported save, newest first.
func (s *Store) ListSaves() ([]SaveEntry, error) {
	rows, err := s.db.Query(
		`SELECT hash, name, length, objects, size, LENGTH(data), imported_at
		 FROM saves
		 ORDER BY imported_at DESC, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var entries []SaveEntry
	for rows.Next() {
		var e SaveEntry
		var importedAt any
		if err := rows.Scan(&e.Hash, &e.Name, &e.Length, &e.Objects, &e.Size, &e.Stored, &importedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.ImportedAt = parseTime(importedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// DeleteSave removes a save. Its results are kept.
func (s *Store) DeleteSave(hash string) error {
	res, err := s.db.Exec("DELETE FROM saves WHERE hash = ?", hash)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: save %s", ErrNotFound, hash)
	}
	return nil
}

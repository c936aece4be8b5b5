package storage

import (
	"fmt"
	"time"
)

// Result is the outcome of one play.
type Result struct {
	ID        int64
	SaveHash  string
	GameName  string
	Outcome   string // "won" or "lost"
	Frames    int
	Seed      int64
	Player    string // SSH user, empty for local play
	CreatedAt time.Time
}

// SaveResult records a play. Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO results (save_hash, game_name, outcome, frames, seed, player)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.SaveHash, r.GameName, r.Outcome, r.Frames, r.Seed, r.Player,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentResults returns the latest plays, optionally for one save.
func (s *Store) RecentResults(saveHash string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, save_hash, game_name, outcome, frames, seed, player, created_at
		 FROM results
		 WHERE ? = '' OR save_hash = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		saveHash, saveHash, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SaveHash, &r.GameName, &r.Outcome, &r.Frames, &r.Seed, &r.Player, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// GameStats contains aggregated statistics for one save.
type GameStats struct {
	SaveHash   string
	GameName   string
	Plays      int
	Wins       int
	BestFrames int // fewest frames to a win, 0 without wins
	LastPlayed time.Time
}

// WinRate returns wins over plays.
func (g GameStats) WinRate() float64 {
	if g.Plays == 0 {
		return 0
	}
	return float64(g.Wins) / float64(g.Plays)
}

// AllGameStats aggregates results per save, most played first.
func (s *Store) AllGameStats() ([]GameStats, error) {
	rows, err := s.db.Query(
		`SELECT save_hash, MAX(game_name), COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN outcome = 'won' THEN frames END), 0),
		        MAX(created_at)
		 FROM results
		 GROUP BY save_hash
		 ORDER BY COUNT(*) DESC, save_hash ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	defer rows.Close()

	var stats []GameStats
	for rows.Next() {
		var g GameStats
		var lastPlayed any
		if err := rows.Scan(&g.SaveHash, &g.GameName, &g.Plays, &g.Wins, &g.BestFrames, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		g.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearResults deletes all results for the given save.
func (s *Store) ClearResults(saveHash string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE save_hash = ?", saveHash)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

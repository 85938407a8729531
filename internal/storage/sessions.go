package storage

import (
	"fmt"
	"time"
)

// Session outcomes.
const (
	OutcomeWon       = "won"
	OutcomeLost      = "lost"
	OutcomeAbandoned = "abandoned"
)

// SessionResult records how one play-through of a level ended.
type SessionResult struct {
	ID              int64
	GameID          string
	LevelID         string
	Outcome         string // OutcomeWon, OutcomeLost or OutcomeAbandoned
	Score           int
	EnemiesDefeated int
	LivesLeft       int
	Ticks           int // Enemy ticks fired during the session
	CreatedAt       time.Time
}

// SaveSession records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(r SessionResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO sessions
		 (game_id, level_id, outcome, score, enemies_defeated, lives_left, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.GameID,
		r.LevelID,
		r.Outcome,
		r.Score,
		r.EnemiesDefeated,
		r.LivesLeft,
		r.Ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the most recent sessions for a game, newest first.
// An empty gameID returns sessions of every game.
func (s *Store) RecentSessions(gameID string, limit int) ([]SessionResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, level_id, outcome, score, enemies_defeated, lives_left, ticks, created_at
		 FROM sessions
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var results []SessionResult
	for rows.Next() {
		var r SessionResult
		var createdAt any

		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.LevelID,
			&r.Outcome,
			&r.Score,
			&r.EnemiesDefeated,
			&r.LivesLeft,
			&r.Ticks,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)

		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// LevelWins counts won sessions per level for a game.
func (s *Store) LevelWins(gameID string) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*)
		 FROM sessions
		 WHERE game_id = ? AND outcome = ?
		 GROUP BY level_id`,
		gameID, OutcomeWon,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level wins: %w", err)
	}
	defer rows.Close()

	wins := make(map[string]int)
	for rows.Next() {
		var level string
		var n int
		if err := rows.Scan(&level, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		wins[level] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return wins, nil
}

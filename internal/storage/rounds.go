package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/waterdrop/internal/game"
)

// RoundEntry is one finished round.
type RoundEntry struct {
	ID         string
	Profile    string
	Difficulty string
	Score      int
	Clean      int
	Polluted   int
	Missed     int
	BestStreak int
	Duration   time.Duration
	Won        bool
	CreatedAt  time.Time
}

// RecordRound appends a finished round to the history of this profile.
func (p *ProfileStore) RecordRound(s game.Summary) error {
	_, err := p.store.SaveRound(p.key, s)
	return err
}

var _ game.RoundRecorder = (*ProfileStore)(nil)

// SaveRound stores a round summary and returns its generated ID.
func (s *Store) SaveRound(profileKey string, sum game.Summary) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO rounds
		 (id, profile, difficulty, score, clean, polluted, missed, best_streak, duration_ms, won)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		profileKey,
		string(sum.Level),
		sum.Score,
		sum.CleanCaught,
		sum.PollutedCaught,
		sum.MissedDrops,
		sum.BestStreak,
		sum.Duration.Milliseconds(),
		sum.Won,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}
	return id, nil
}

const roundColumns = `id, profile, difficulty, score, clean, polluted, missed,
		        best_streak, duration_ms, won, created_at`

// TopRounds retrieves the best N rounds of a profile, highest score first.
func (s *Store) TopRounds(profileKey string, limit int) ([]RoundEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRounds(
		`SELECT `+roundColumns+`
		 FROM rounds
		 WHERE profile = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		profileKey, limit,
	)
}

// RecentRounds retrieves the latest N rounds of a profile, newest first.
func (s *Store) RecentRounds(profileKey string, limit int) ([]RoundEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRounds(
		`SELECT `+roundColumns+`
		 FROM rounds
		 WHERE profile = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		profileKey, limit,
	)
}

func (s *Store) queryRounds(query string, args ...any) ([]RoundEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var e RoundEntry
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.Profile,
			&e.Difficulty,
			&e.Score,
			&e.Clean,
			&e.Polluted,
			&e.Missed,
			&e.BestStreak,
			&durationMs,
			&e.Won,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RoundStats contains aggregated round history of a profile.
type RoundStats struct {
	Profile    string
	Rounds     int
	Wins       int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// ProfileStats retrieves aggregated history for a profile.
func (s *Store) ProfileStats(profileKey string) (*RoundStats, error) {
	stats := &RoundStats{Profile: profileKey}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM rounds WHERE profile = ?`,
		profileKey,
	).Scan(&stats.Rounds, &stats.Wins, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get profile stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM rounds WHERE profile = ? ORDER BY created_at DESC LIMIT 1`,
		profileKey,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// Profiles lists every profile that has saved values or rounds.
func (s *Store) Profiles() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT profile FROM profile_kv
		 UNION
		 SELECT profile FROM rounds
		 ORDER BY profile`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list profiles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return names, nil
}

// ClearProfile deletes the saved values and round history of a profile.
func (s *Store) ClearProfile(profileKey string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM profile_kv WHERE profile = ?", profileKey); err != nil {
		return fmt.Errorf("storage: cannot clear profile: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM rounds WHERE profile = ?", profileKey); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/waterdrop/internal/profile"
)

// Profile value keys. Every value is stored as JSON.
const (
	KeyHighScore    = "waterdrop:highscore"
	KeyStats        = "waterdrop:stats"
	KeyAchievements = "waterdrop:ach"
	KeyMute         = "waterdrop:mute"
)

// ProfileStore is the persistent store of one profile.
// It implements profile.Store and game.RoundRecorder.
type ProfileStore struct {
	store *Store
	key   string
}

// Profile returns the store for the named profile.
func (s *Store) Profile(key string) *ProfileStore {
	return &ProfileStore{store: s, key: key}
}

// Key returns the profile name.
func (p *ProfileStore) Key() string {
	return p.key
}

type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// Load reads the profile. Missing or undecodable values fall back to their
// defaults one by one; only database failures are returned as errors.
func (p *ProfileStore) Load() (profile.Profile, error) {
	return p.load(p.store.db)
}

func (p *ProfileStore) load(q queryer) (profile.Profile, error) {
	out := profile.Default()

	rows, err := q.Query(
		"SELECT key, value FROM profile_kv WHERE profile = ?",
		p.key,
	)
	if err != nil {
		return out, fmt.Errorf("storage: cannot query profile: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return profile.Default(), fmt.Errorf("storage: cannot scan row: %w", err)
		}
		decodeInto(&out, key, []byte(value))
	}
	if err := rows.Err(); err != nil {
		return profile.Default(), fmt.Errorf("storage: row iteration error: %w", err)
	}

	out.Sanitize()
	return out, nil
}

func decodeInto(out *profile.Profile, key string, value []byte) {
	switch key {
	case KeyHighScore:
		var v int
		if json.Unmarshal(value, &v) == nil {
			out.HighScore = v
		}
	case KeyStats:
		var v profile.Stats
		if json.Unmarshal(value, &v) == nil {
			out.Stats = v
		}
	case KeyAchievements:
		var v map[string]bool
		if json.Unmarshal(value, &v) == nil && v != nil {
			out.Achievements = v
		}
	case KeyMute:
		var v bool
		if json.Unmarshal(value, &v) == nil {
			out.Muted = v
		}
	}
}

// Save writes every profile value in one transaction.
func (p *ProfileStore) Save(pr profile.Profile) error {
	tx, err := p.store.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := putProfile(tx, p.key, pr.Clone()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit profile: %w", err)
	}
	return nil
}

// Update re-reads the profile, applies fn and writes the result inside one
// transaction.
func (p *ProfileStore) Update(fn func(*profile.Profile)) (profile.Profile, error) {
	tx, err := p.store.db.Begin()
	if err != nil {
		return profile.Default(), fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	pr, err := p.load(tx)
	if err != nil {
		return profile.Default(), err
	}
	fn(&pr)
	pr.Sanitize()
	if err := putProfile(tx, p.key, pr); err != nil {
		return profile.Default(), err
	}

	if err := tx.Commit(); err != nil {
		return profile.Default(), fmt.Errorf("storage: cannot commit profile: %w", err)
	}
	return pr.Clone(), nil
}

func putProfile(tx *sql.Tx, profileKey string, pr profile.Profile) error {
	pr.Sanitize()

	values := map[string]any{
		KeyHighScore:    pr.HighScore,
		KeyStats:        pr.Stats,
		KeyAchievements: pr.Achievements,
		KeyMute:         pr.Muted,
	}
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("storage: cannot encode %s: %w", key, err)
		}
		if err := putValue(tx, profileKey, key, string(data)); err != nil {
			return err
		}
	}
	return nil
}

func putValue(tx *sql.Tx, profileKey, key, value string) error {
	_, err := tx.Exec(
		`INSERT INTO profile_kv (profile, key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (profile, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		profileKey, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", key, err)
	}
	return nil
}

// SetRaw stores an undecoded value. It exists for repair tooling and tests.
func (p *ProfileStore) SetRaw(key, value string) error {
	tx, err := p.store.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := putValue(tx, p.key, key, value); err != nil {
		return err
	}
	return tx.Commit()
}

var _ profile.Store = (*ProfileStore)(nil)

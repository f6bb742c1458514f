package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/waterdrop/internal/config"
	"github.com/vovakirdan/waterdrop/internal/game"
	"github.com/vovakirdan/waterdrop/internal/profile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	p := profile.Default()
	p.HighScore = 140
	if err := store.Profile("local").Save(p); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	got, err := store.Profile("local").Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.HighScore != 140 {
		t.Errorf("HighScore = %d, want 140", got.HighScore)
	}
}

func TestProfileLoadMissingIsDefault(t *testing.T) {
	store := openTestStore(t)

	p, err := store.Profile("nobody").Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if p.HighScore != 0 || p.Stats != (profile.Stats{}) || len(p.Achievements) != 0 || p.Muted {
		t.Errorf("Load() = %+v, want defaults", p)
	}
	if p.Achievements == nil {
		t.Error("Achievements should be allocated")
	}
}

func TestProfileSaveAndLoad(t *testing.T) {
	store := openTestStore(t)
	ps := store.Profile("alice")

	want := profile.Profile{
		HighScore:    120,
		Stats:        profile.Stats{TotalGames: 3, TotalClean: 30, TotalPolluted: 2, BestCleanStreak: 12},
		Achievements: map[string]bool{"score100": true, "streak10": true},
		Muted:        true,
	}
	if err := ps.Save(want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := ps.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.HighScore != want.HighScore || got.Stats != want.Stats || got.Muted != want.Muted {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
	if len(got.Achievements) != 2 || !got.Unlocked("score100") || !got.Unlocked("streak10") {
		t.Errorf("Achievements = %v", got.Achievements)
	}

	// Profiles are isolated.
	other, _ := store.Profile("bob").Load()
	if other.HighScore != 0 {
		t.Errorf("bob HighScore = %d, want 0", other.HighScore)
	}
}

func TestProfileCorruptValuesFallBack(t *testing.T) {
	store := openTestStore(t)
	ps := store.Profile("local")

	if err := ps.Save(profile.Profile{HighScore: 90, Muted: true}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := ps.SetRaw(KeyStats, "{not json"); err != nil {
		t.Fatalf("SetRaw() failed: %v", err)
	}
	if err := ps.SetRaw(KeyAchievements, "null"); err != nil {
		t.Fatalf("SetRaw() failed: %v", err)
	}
	if err := ps.SetRaw(KeyHighScore, "-7"); err != nil {
		t.Fatalf("SetRaw() failed: %v", err)
	}

	p, err := ps.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if p.Stats != (profile.Stats{}) {
		t.Errorf("Stats = %+v, want defaults", p.Stats)
	}
	if p.Achievements == nil || len(p.Achievements) != 0 {
		t.Errorf("Achievements = %v, want empty", p.Achievements)
	}
	if p.HighScore != 0 {
		t.Errorf("HighScore = %d, want 0", p.HighScore)
	}
	if !p.Muted {
		t.Error("intact mute flag was lost")
	}
}

func TestStatsUseOriginalJSONKeys(t *testing.T) {
	store := openTestStore(t)
	ps := store.Profile("local")

	raw := `{"totalGames":4,"totalClean":40,"totalPolluted":3,"bestCleanStreak":9}`
	if err := ps.SetRaw(KeyStats, raw); err != nil {
		t.Fatalf("SetRaw() failed: %v", err)
	}

	p, _ := ps.Load()
	want := profile.Stats{TotalGames: 4, TotalClean: 40, TotalPolluted: 3, BestCleanStreak: 9}
	if p.Stats != want {
		t.Errorf("Stats = %+v, want %+v", p.Stats, want)
	}
}

func TestRecordAndQueryRounds(t *testing.T) {
	store := openTestStore(t)
	ps := store.Profile("alice")

	scores := []int{50, 120, 95}
	for _, score := range scores {
		err := ps.RecordRound(game.Summary{
			Level:       config.LevelNormal,
			Score:       score,
			CleanCaught: score / 10,
			MissedDrops: 2,
			BestStreak:  4,
			Duration:    30 * time.Second,
			Won:         score >= 100,
		})
		if err != nil {
			t.Fatalf("RecordRound() failed: %v", err)
		}
	}
	if _, err := store.SaveRound("bob", game.Summary{Level: config.LevelHard, Score: 999}); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}

	top, err := store.TopRounds("alice", 10)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("len(TopRounds) = %d, want 3", len(top))
	}
	if top[0].Score != 120 || top[1].Score != 95 || top[2].Score != 50 {
		t.Errorf("TopRounds order = %d, %d, %d", top[0].Score, top[1].Score, top[2].Score)
	}
	e := top[0]
	if e.ID == "" || e.Profile != "alice" || e.Difficulty != "normal" || !e.Won ||
		e.Clean != 12 || e.Missed != 2 || e.BestStreak != 4 || e.Duration != 30*time.Second {
		t.Errorf("entry = %+v", e)
	}

	recent, err := store.RecentRounds("alice", 2)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 95 || recent[1].Score != 120 {
		t.Errorf("RecentRounds = %+v", recent)
	}
}

func TestProfileStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.ProfileStats("nobody")
	if err != nil {
		t.Fatalf("ProfileStats() failed: %v", err)
	}
	if empty.Rounds != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	for _, score := range []int{100, 50} {
		if _, err := store.SaveRound("alice", game.Summary{Score: score, Won: score >= 100}); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	stats, err := store.ProfileStats("alice")
	if err != nil {
		t.Fatalf("ProfileStats() failed: %v", err)
	}
	if stats.Rounds != 2 || stats.Wins != 1 || stats.HighScore != 100 || stats.TotalScore != 150 || stats.AvgScore != 75 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}
}

func TestProfilesAndClear(t *testing.T) {
	store := openTestStore(t)

	if err := store.Profile("alice").Save(profile.Default()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, err := store.SaveRound("bob", game.Summary{Score: 10}); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}

	names, err := store.Profiles()
	if err != nil {
		t.Fatalf("Profiles() failed: %v", err)
	}
	if len(names) != 2 || names[0] != "alice" || names[1] != "bob" {
		t.Errorf("Profiles() = %v", names)
	}

	if err := store.ClearProfile("bob"); err != nil {
		t.Fatalf("ClearProfile() failed: %v", err)
	}
	rounds, _ := store.RecentRounds("bob", 10)
	if len(rounds) != 0 {
		t.Errorf("bob still has %d rounds", len(rounds))
	}
	names, _ = store.Profiles()
	if len(names) != 1 || names[0] != "alice" {
		t.Errorf("Profiles() after clear = %v", names)
	}
}

func TestRoundDrivesProfileStore(t *testing.T) {
	store := openTestStore(t)
	ps := store.Profile("local")

	r := game.New(game.Options{
		Config:  config.DefaultConfig(),
		Seed:    9,
		Store:   ps,
		History: ps,
	})
	for i := 0; i < 2; i++ {
		r.Start("")
		r.Tick(time.Minute)
	}

	p, err := ps.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if p.Stats.TotalGames != 2 {
		t.Errorf("TotalGames = %d, want 2", p.Stats.TotalGames)
	}
	rounds, _ := store.RecentRounds("local", 10)
	if len(rounds) != 2 {
		t.Errorf("recorded %d rounds, want 2", len(rounds))
	}
}

func TestConcurrentRoundsMergeProfile(t *testing.T) {
	store := openTestStore(t)
	cfg := config.DefaultConfig()
	cfg.Spawn.PollutedChance = 0

	newRound := func(seed int64) *game.Round {
		ps := store.Profile("alice")
		return game.New(game.Options{Config: cfg, Seed: seed, Store: ps, History: ps})
	}
	a, b := newRound(1), newRound(2)
	a.Start("")
	b.Start("")

	for caught := 0; caught < 12; {
		if ds := a.Drops(); len(ds) > 0 {
			if !a.Catch(ds[0].ID) {
				t.Fatalf("Catch(%d) = false", ds[0].ID)
			}
			caught++
			continue
		}
		a.Tick(20 * time.Millisecond)
	}
	a.Tick(time.Minute)
	sa, ok := a.LastSummary()
	if !ok || len(sa.Unlocked) == 0 {
		t.Fatalf("first round should unlock badges, got %+v", sa)
	}

	// The second round loaded the profile before the first one ended.
	b.Tick(time.Minute)

	p, err := store.Profile("alice").Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	for _, id := range sa.Unlocked {
		if !p.Unlocked(id) {
			t.Errorf("badge %s was lost, stored %v", id, p.Achievements)
		}
	}
	if p.Stats.TotalGames != 2 || p.Stats.TotalClean != 12 {
		t.Errorf("Stats = %+v, want 2 games and 12 clean", p.Stats)
	}
	if p.HighScore != sa.Score {
		t.Errorf("HighScore = %d, want %d", p.HighScore, sa.Score)
	}
	if got := b.Profile(); !got.Unlocked(sa.Unlocked[0]) {
		t.Error("the second session should see the merged profile")
	}
}

func TestProfileUpdateKeepsOtherWrites(t *testing.T) {
	store := openTestStore(t)
	ps := store.Profile("local")

	if err := ps.Save(profile.Profile{HighScore: 80, Achievements: map[string]bool{"score100": true}}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got, err := ps.Update(func(p *profile.Profile) { p.Muted = true })
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if !got.Muted || got.HighScore != 80 || !got.Unlocked("score100") {
		t.Errorf("Update() = %+v", got)
	}

	stored, _ := ps.Load()
	if !stored.Muted || stored.HighScore != 80 {
		t.Errorf("Load() = %+v", stored)
	}
}

package profile

import "testing"

func TestSanitize(t *testing.T) {
	p := Profile{
		HighScore: -5,
		Stats: Stats{
			TotalGames:      -1,
			TotalClean:      3,
			TotalPolluted:   -2,
			BestCleanStreak: -9,
		},
		Achievements: map[string]bool{"score100": true, "streak10": false},
	}
	p.Sanitize()

	if p.HighScore != 0 {
		t.Errorf("HighScore = %d, want 0", p.HighScore)
	}
	want := Stats{TotalClean: 3}
	if p.Stats != want {
		t.Errorf("Stats = %+v, want %+v", p.Stats, want)
	}
	if len(p.Achievements) != 1 || !p.Unlocked("score100") {
		t.Errorf("Achievements = %v, want only score100", p.Achievements)
	}
}

func TestSanitizeNilAchievements(t *testing.T) {
	var p Profile
	p.Sanitize()
	if p.Achievements == nil {
		t.Fatal("Achievements should be allocated")
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := Default()
	p.Achievements["score100"] = true

	c := p.Clone()
	c.Achievements["score200"] = true

	if p.Unlocked("score200") {
		t.Error("mutating the clone changed the original")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(Default())

	p, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	p.HighScore = 120
	p.Achievements["noPollute"] = true
	if err := s.Save(p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// The caller's copy must not alias the stored one.
	p.Achievements["score200"] = true

	got, _ := s.Load()
	if got.HighScore != 120 || !got.Unlocked("noPollute") || got.Unlocked("score200") {
		t.Errorf("Load() = %+v", got)
	}
	if s.Saves() != 1 {
		t.Errorf("Saves() = %d, want 1", s.Saves())
	}
}

func TestMemoryStoreUpdateMerges(t *testing.T) {
	s := NewMemoryStore(Default())

	// Two writers that loaded the same snapshot.
	if _, err := s.Update(func(p *Profile) {
		p.Stats.TotalGames++
		p.Achievements["score100"] = true
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := s.Update(func(p *Profile) {
		p.Stats.TotalGames++
		p.HighScore = max(p.HighScore, 40)
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if got.Stats.TotalGames != 2 || !got.Unlocked("score100") || got.HighScore != 40 {
		t.Errorf("Update() = %+v", got)
	}
	got.Achievements["streak10"] = true
	if stored, _ := s.Load(); stored.Unlocked("streak10") {
		t.Error("the returned profile must not alias the stored one")
	}
	if s.Saves() != 2 {
		t.Errorf("Saves() = %d, want 2", s.Saves())
	}
}

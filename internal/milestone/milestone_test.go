package milestone

import "testing"

func TestGoalFor(t *testing.T) {
	tests := []struct {
		score     int
		prev      int
		next      int
		remaining int
		fraction  float64
		flash     bool
	}{
		{0, 0, 100, 100, 0, false},
		{40, 0, 100, 60, 0.4, false},
		{95, 0, 100, 5, 0.95, false},
		{100, 100, 200, 100, 0, true},
		{120, 100, 200, 80, 0.2, false},
		{300, 300, 400, 100, 0, true},
		{-5, 0, 100, 100, 0, false},
	}

	for _, tt := range tests {
		g := GoalFor(tt.score)
		if g.Prev != tt.prev || g.Next != tt.next || g.Remaining != tt.remaining {
			t.Errorf("GoalFor(%d) = %+v, want prev=%d next=%d remaining=%d",
				tt.score, g, tt.prev, tt.next, tt.remaining)
		}
		if diff := g.Fraction - tt.fraction; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("GoalFor(%d).Fraction = %v, want %v", tt.score, g.Fraction, tt.fraction)
		}
		if g.Flash != tt.flash {
			t.Errorf("GoalFor(%d).Flash = %v, want %v", tt.score, g.Flash, tt.flash)
		}
	}
}

func TestGoalLabel(t *testing.T) {
	got := GoalFor(130).Label()
	want := "Next milestone: 200 points (70 to go)"
	if got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
}

func TestTrackerFiresOnce(t *testing.T) {
	tr := NewTracker()

	if hit := tr.Check(40); len(hit) != 0 {
		t.Fatalf("Check(40) = %v, want none", hit)
	}
	hit := tr.Check(100)
	if len(hit) != 2 || hit[0].Score != 50 || hit[1].Score != 100 {
		t.Fatalf("Check(100) = %v, want 50 and 100", hit)
	}
	if hit := tr.Check(95); len(hit) != 0 {
		t.Fatalf("Check(95) after a drop = %v, want none", hit)
	}
	if hit := tr.Check(100); len(hit) != 0 {
		t.Fatalf("Check(100) again = %v, want none", hit)
	}
	if !tr.Reached(100) || tr.Reached(200) {
		t.Error("Reached() mismatch")
	}
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker()
	tr.Check(300)
	tr.Reset()

	if hit := tr.Check(50); len(hit) != 1 || hit[0].Text() != "💧 Getting started! 50 points!" {
		t.Errorf("Check(50) after Reset = %v", hit)
	}
}

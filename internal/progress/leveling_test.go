package progress_test

import (
	"testing"

	"github.com/eduflow-app/eduflow/internal/progress"
)

var testThresholds = []progress.Threshold{
	{Level: 1, Points: 0},
	{Level: 2, Points: 50},
	{Level: 3, Points: 150},
}

func TestApplyPoints(t *testing.T) {
	tests := []struct {
		name          string
		current       int
		delta         int
		wantPoints    int
		wantLevel     int
		wantLeveledUp bool
	}{
		{"no change", 45, 0, 45, 1, false},
		{"gain below threshold", 10, 20, 30, 1, false},
		{"level up crossing threshold", 45, 10, 55, 2, true},
		{"exact threshold qualifies", 40, 10, 50, 2, true},
		{"two levels at once", 0, 200, 200, 3, true},
		{"negative delta", 60, -20, 40, 1, false},
		{"points never negative", 10, -50, 0, 1, false},
		{"beyond max threshold caps level", 100, 900, 1000, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := progress.ApplyPoints(tt.current, tt.delta, testThresholds)
			if got.NewPoints != tt.wantPoints {
				t.Errorf("NewPoints = %d, want %d", got.NewPoints, tt.wantPoints)
			}
			if got.NewLevel != tt.wantLevel {
				t.Errorf("NewLevel = %d, want %d", got.NewLevel, tt.wantLevel)
			}
			if got.LeveledUp != tt.wantLeveledUp {
				t.Errorf("LeveledUp = %v, want %v", got.LeveledUp, tt.wantLeveledUp)
			}
		})
	}
}

func TestApplyPoints_PrizeOnLevelUp(t *testing.T) {
	thresholds := []progress.Threshold{
		{Level: 1, Points: 0, Prize: "Newbie Learner"},
		{Level: 2, Points: 50, Prize: "Knowledge Seeker"},
	}

	got := progress.ApplyPoints(45, 10, thresholds)
	if !got.LeveledUp {
		t.Fatal("expected level up")
	}
	if got.Prize != "Knowledge Seeker" {
		t.Errorf("Prize = %q, want Knowledge Seeker", got.Prize)
	}

	// No prize when the level is unchanged.
	got = progress.ApplyPoints(60, 10, thresholds)
	if got.Prize != "" {
		t.Errorf("Prize = %q, want empty when level unchanged", got.Prize)
	}
}

func TestApplyPoints_RoundTrip(t *testing.T) {
	// Removing then re-adding the same delta restores the original pair
	// as long as points do not cross zero.
	for _, start := range []int{30, 50, 155} {
		for _, d := range []int{10, 25} {
			down := progress.ApplyPoints(start, -d, testThresholds)
			up := progress.ApplyPoints(down.NewPoints, d, testThresholds)
			if up.NewPoints != start {
				t.Errorf("round trip from %d with delta %d: points = %d", start, d, up.NewPoints)
			}
			if up.NewLevel != progress.LevelFor(start, testThresholds) {
				t.Errorf("round trip from %d with delta %d: level = %d", start, d, up.NewLevel)
			}
		}
	}
}

func TestValidateThresholds(t *testing.T) {
	tests := []struct {
		name       string
		thresholds []progress.Threshold
		wantErr    bool
	}{
		{"valid", testThresholds, false},
		{"default table", progress.DefaultThresholds, false},
		{"empty", nil, true},
		{"missing floor", []progress.Threshold{{Level: 2, Points: 50}}, true},
		{"nonzero floor points", []progress.Threshold{{Level: 1, Points: 10}}, true},
		{"level gap is fine", []progress.Threshold{{Level: 1, Points: 0}, {Level: 5, Points: 100}}, false},
		{"duplicate level", []progress.Threshold{{Level: 1, Points: 0}, {Level: 1, Points: 50}}, true},
		{"points not increasing", []progress.Threshold{{Level: 1, Points: 0}, {Level: 2, Points: 0}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := progress.ValidateThresholds(tt.thresholds)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateThresholds() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNextThreshold(t *testing.T) {
	next, ok := progress.NextThreshold(1, testThresholds)
	if !ok || next.Level != 2 {
		t.Errorf("NextThreshold(1) = %+v, %v; want level 2", next, ok)
	}

	if _, ok := progress.NextThreshold(3, testThresholds); ok {
		t.Error("NextThreshold(3) should report no next level at the cap")
	}
}

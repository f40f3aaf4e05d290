package progress

import "fmt"

// Threshold maps a level to the minimum points required to hold it.
// The table is a configuration constant: ordered, strictly increasing
// in both level and points, never mutated at runtime.
type Threshold struct {
	Level  int    `json:"level"`
	Points int    `json:"points"`
	Prize  string `json:"prize,omitempty"`
}

// DefaultThresholds is the built-in level table.
var DefaultThresholds = []Threshold{
	{Level: 1, Points: 0, Prize: "Newbie Learner"},
	{Level: 2, Points: 50, Prize: "Knowledge Seeker"},
	{Level: 3, Points: 150, Prize: "Pathfinder"},
	{Level: 4, Points: 300, Prize: "Master Explorer"},
	{Level: 5, Points: 500, Prize: "EduFlow Grandmaster"},
}

// ValidateThresholds rejects malformed tables at load time. The table
// must be non-empty, start at the level-1/zero-points floor, and be
// strictly increasing in both fields.
func ValidateThresholds(thresholds []Threshold) error {
	if len(thresholds) == 0 {
		return fmt.Errorf("threshold table is empty")
	}
	if thresholds[0].Level != 1 || thresholds[0].Points != 0 {
		return fmt.Errorf("threshold table must start at level 1 with 0 points, got level %d with %d points",
			thresholds[0].Level, thresholds[0].Points)
	}
	for i := 1; i < len(thresholds); i++ {
		prev, cur := thresholds[i-1], thresholds[i]
		if cur.Level <= prev.Level {
			return fmt.Errorf("threshold levels not strictly increasing at index %d", i)
		}
		if cur.Points <= prev.Points {
			return fmt.Errorf("threshold points not strictly increasing at index %d", i)
		}
	}
	return nil
}

// LevelResult describes the outcome of applying a point delta.
type LevelResult struct {
	NewPoints int    `json:"new_points"`
	NewLevel  int    `json:"new_level"`
	LeveledUp bool   `json:"leveled_up"`
	Prize     string `json:"prize,omitempty"`
}

// ApplyPoints adds delta to the current point total and resolves the
// resulting level against the threshold table. Points never go negative;
// the level caps at the highest defined threshold. Prize is set only
// when a level-up occurred.
func ApplyPoints(currentPoints, delta int, thresholds []Threshold) LevelResult {
	newPoints := currentPoints + delta
	if newPoints < 0 {
		newPoints = 0
	}

	previousLevel := levelFor(currentPoints, thresholds)
	newLevel, prize := levelAndPrizeFor(newPoints, thresholds)

	result := LevelResult{
		NewPoints: newPoints,
		NewLevel:  newLevel,
		LeveledUp: newLevel > previousLevel,
	}
	if result.LeveledUp {
		result.Prize = prize
	}
	return result
}

// LevelFor returns the level a point total corresponds to.
func LevelFor(points int, thresholds []Threshold) int {
	return levelFor(points, thresholds)
}

// NextThreshold returns the threshold following the given level, or
// false when the level is already the highest defined.
func NextThreshold(level int, thresholds []Threshold) (Threshold, bool) {
	for _, th := range thresholds {
		if th.Level > level {
			return th, true
		}
	}
	return Threshold{}, false
}

func levelFor(points int, thresholds []Threshold) int {
	level, _ := levelAndPrizeFor(points, thresholds)
	return level
}

func levelAndPrizeFor(points int, thresholds []Threshold) (int, string) {
	level, prize := 1, ""
	for _, th := range thresholds {
		if th.Points <= points {
			level, prize = th.Level, th.Prize
		}
	}
	return level, prize
}

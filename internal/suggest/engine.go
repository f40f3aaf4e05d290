// Package suggest maps a (goal, experience level) pair to a suggested
// ordered learning path. The mapping is a fixed decision table; the
// engine is a pure lookup with no state.
package suggest

import (
	"fmt"
	"log/slog"
	"strings"
)

// Goal is a career direction the user is studying toward.
type Goal string

const (
	GoalSDE      Goal = "sde"
	GoalFrontend Goal = "frontend"
	GoalBackend  Goal = "backend"
	GoalData     Goal = "data"
	GoalDevOps   Goal = "devops"
)

// Level is the user's self-reported experience level.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Goals lists every recognized goal.
func Goals() []Goal {
	return []Goal{GoalSDE, GoalFrontend, GoalBackend, GoalData, GoalDevOps}
}

// Levels lists every recognized experience level.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// Suggestion is an ordered list of topic ids plus a narrative
// explaining the path. The first id is the one callers highlight and
// auto-select.
type Suggestion struct {
	TopicIDs  []string `json:"topic_ids"`
	Narrative string   `json:"narrative"`
}

type tableKey struct {
	goal  Goal
	level Level
}

// fallbackNarrative is returned for a pair outside the table. With both
// enums closed this only happens on a caller or configuration bug, so
// the lookup also logs a warning.
const fallbackNarrative = "We could not match your goal to a curated path. Browse the topic list and pick whatever interests you most."

var table = map[tableKey][]string{
	{GoalSDE, LevelBeginner}:          {"javascript-es6", "css-fundamentals", "react-basics", "data-structures-algorithms"},
	{GoalSDE, LevelIntermediate}:      {"data-structures-algorithms", "typescript-deep-dive", "nextjs-fundamentals"},
	{GoalSDE, LevelAdvanced}:          {"data-structures-algorithms", "typescript-deep-dive"},
	{GoalFrontend, LevelBeginner}:     {"css-fundamentals", "javascript-es6", "react-basics"},
	{GoalFrontend, LevelIntermediate}: {"react-basics", "typescript-deep-dive", "nextjs-fundamentals"},
	{GoalFrontend, LevelAdvanced}:     {"nextjs-fundamentals", "typescript-deep-dive"},
	{GoalBackend, LevelBeginner}:      {"javascript-es6", "typescript-deep-dive", "nextjs-fundamentals"},
	{GoalBackend, LevelIntermediate}:  {"typescript-deep-dive", "nextjs-fundamentals", "data-structures-algorithms"},
	{GoalBackend, LevelAdvanced}:      {"data-structures-algorithms", "nextjs-fundamentals"},
	{GoalData, LevelBeginner}:         {"javascript-es6", "data-structures-algorithms"},
	{GoalData, LevelIntermediate}:     {"data-structures-algorithms", "typescript-deep-dive"},
	{GoalData, LevelAdvanced}:         {"data-structures-algorithms"},
	{GoalDevOps, LevelBeginner}:       {"javascript-es6", "nextjs-fundamentals"},
	{GoalDevOps, LevelIntermediate}:   {"nextjs-fundamentals", "typescript-deep-dive"},
	{GoalDevOps, LevelAdvanced}:       {"nextjs-fundamentals", "data-structures-algorithms"},
}

var goalLabels = map[Goal]string{
	GoalSDE:      "software development engineer",
	GoalFrontend: "frontend developer",
	GoalBackend:  "backend developer",
	GoalData:     "data practitioner",
	GoalDevOps:   "devops engineer",
}

// Suggest looks up the path for the given pair. Repeated calls with the
// same inputs return the same suggestion.
func Suggest(goal Goal, level Level) Suggestion {
	topicIDs, ok := table[tableKey{goal, level}]
	if !ok {
		slog.Warn("no suggestion entry for pair", "goal", goal, "level", level)
		return Suggestion{TopicIDs: []string{}, Narrative: fallbackNarrative}
	}

	out := Suggestion{TopicIDs: make([]string, len(topicIDs))}
	copy(out.TopicIDs, topicIDs)
	out.Narrative = narrative(goal, level, len(topicIDs))
	return out
}

func narrative(goal Goal, level Level, steps int) string {
	label := goalLabels[goal]
	switch level {
	case LevelBeginner:
		return fmt.Sprintf("You are starting out as a %s, so this %d-step path builds the foundations first and layers the rest on top in order.", label, steps)
	case LevelIntermediate:
		return fmt.Sprintf("With some %s experience already, this %d-step path skips the basics and sharpens the skills the role leans on most.", label, steps)
	default:
		return fmt.Sprintf("As an advanced %s, this %d-step path goes straight to the deep material worth your time.", label, steps)
	}
}

// ParseGoal converts user input into a Goal.
func ParseGoal(s string) (Goal, error) {
	g := Goal(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Goals() {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown goal %q", s)
}

// ParseLevel converts user input into a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Levels() {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown level %q", s)
}

package catalog

import "fmt"

// ItemType classifies a course item by the kind of resource it links to.
type ItemType string

const (
	ItemVideo   ItemType = "video"
	ItemArticle ItemType = "article"
	ItemRepo    ItemType = "repo"
)

// Valid reports whether the item type is one of the known kinds.
func (t ItemType) Valid() bool {
	switch t {
	case ItemVideo, ItemArticle, ItemRepo:
		return true
	}
	return false
}

// Difficulty grades a topic for display and filtering.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether the difficulty is one of the known grades.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// CourseItem is a single learning resource within a topic. Items are
// immutable once loaded.
type CourseItem struct {
	ID     string   `yaml:"id" json:"id"`
	Title  string   `yaml:"title" json:"title"`
	Type   ItemType `yaml:"type" json:"type"`
	URL    string   `yaml:"url" json:"url"`
	Points int      `yaml:"points" json:"points"`
	Tags   []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Topic is an ordered collection of course items. Item order is
// significant: it is both the display order and the order the roadmap
// planner distributes items in.
type Topic struct {
	ID            string       `yaml:"id" json:"id"`
	Name          string       `yaml:"name" json:"name"`
	Description   string       `yaml:"description" json:"description"`
	Difficulty    Difficulty   `yaml:"difficulty" json:"difficulty"`
	EstimatedTime string       `yaml:"estimated_time" json:"estimated_time"`
	Sequence      int          `yaml:"sequence" json:"-"`
	Items         []CourseItem `yaml:"items" json:"items"`
}

// Validate checks the structural invariants a topic must satisfy beyond
// what the document schema can express.
func (t Topic) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("topic id is empty")
	}
	if !t.Difficulty.Valid() {
		return fmt.Errorf("topic %s: unknown difficulty %q", t.ID, t.Difficulty)
	}
	seen := make(map[string]bool, len(t.Items))
	for _, item := range t.Items {
		if item.ID == "" {
			return fmt.Errorf("topic %s: item with empty id", t.ID)
		}
		if seen[item.ID] {
			return fmt.Errorf("topic %s: duplicate item id %s", t.ID, item.ID)
		}
		seen[item.ID] = true
		if !item.Type.Valid() {
			return fmt.Errorf("topic %s: item %s has unknown type %q", t.ID, item.ID, item.Type)
		}
		if item.Points < 0 {
			return fmt.Errorf("topic %s: item %s has negative points", t.ID, item.ID)
		}
	}
	return nil
}

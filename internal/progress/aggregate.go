// Package progress owns per-user learning progress: the completion map,
// accumulated points, the leveling table, and the derived aggregates the
// UI displays. The computation functions here are pure; persistence and
// coordination live in the store and tracker.
package progress

import "github.com/eduflow-app/eduflow/internal/catalog"

// CompletionMap records which course items a user has marked done.
// Absent keys mean not completed.
type CompletionMap map[string]bool

// TopicProgress is the completion aggregate for one topic (or for the
// whole catalog, in Summary.Overall).
type TopicProgress struct {
	TopicID    string `json:"topic_id,omitempty"`
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

// Summary holds per-topic aggregates plus the overall one.
type Summary struct {
	PerTopic []TopicProgress `json:"per_topic"`
	Overall  TopicProgress   `json:"overall"`
}

// Aggregate computes completion counts and percentages for every topic
// and for the catalog as a whole. It is deterministic and has no
// failure modes: an empty topic list yields an all-zero summary.
func Aggregate(topics []catalog.Topic, completed CompletionMap) Summary {
	summary := Summary{PerTopic: make([]TopicProgress, 0, len(topics))}

	for _, topic := range topics {
		tp := TopicProgress{TopicID: topic.ID, Total: len(topic.Items)}
		for _, item := range topic.Items {
			if completed[item.ID] {
				tp.Completed++
			}
		}
		tp.Percentage = percentage(tp.Completed, tp.Total)
		summary.PerTopic = append(summary.PerTopic, tp)

		summary.Overall.Completed += tp.Completed
		summary.Overall.Total += tp.Total
	}
	summary.Overall.Percentage = percentage(summary.Overall.Completed, summary.Overall.Total)
	return summary
}

// percentage rounds half-up, matching the display convention.
func percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return (completed*100*2 + total) / (total * 2)
}

// Package catalog loads the static topic catalog from YAML documents.
// The catalog is read-only after startup: topics and their items are
// never mutated at runtime.
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Loader holds the loaded catalog and answers lookups against it.
type Loader struct {
	rootDir string
	topics  map[string]Topic
	items   map[string]CourseItem
	ordered []string // topic ids in catalog order
	mu      sync.RWMutex
}

// NewLoader reads every topic document under rootDir and builds the
// catalog. Documents that fail schema validation are skipped with a
// warning; duplicate topic or item ids are a configuration error and
// fail the load.
func NewLoader(rootDir string) (*Loader, error) {
	l := &Loader{
		rootDir: rootDir,
		topics:  make(map[string]Topic),
		items:   make(map[string]CourseItem),
	}

	if err := l.loadAll(); err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	slog.Info("catalog loaded", "topics", len(l.topics), "items", len(l.items))
	return l, nil
}

// Topic returns a topic by id.
func (l *Loader) Topic(id string) (Topic, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.topics[id]
	return t, ok
}

// Item returns a course item by id, searching the whole catalog.
func (l *Loader) Item(id string) (CourseItem, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	item, ok := l.items[id]
	return item, ok
}

// Topics returns all topics in catalog order.
func (l *Loader) Topics() []Topic {
	l.mu.RLock()
	defer l.mu.RUnlock()
	topics := make([]Topic, 0, len(l.ordered))
	for _, id := range l.ordered {
		topics = append(topics, l.topics[id])
	}
	return topics
}

func (l *Loader) loadAll() error {
	if _, err := os.Stat(l.rootDir); err != nil {
		return fmt.Errorf("catalog dir: %w", err)
	}

	var docs []Topic
	err := filepath.Walk(l.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}
		topic, ok, err := loadTopicFile(path)
		if err != nil {
			return err
		}
		if ok {
			docs = append(docs, topic)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Catalog order: explicit sequence first, name as tie-break.
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Sequence != docs[j].Sequence {
			return docs[i].Sequence < docs[j].Sequence
		}
		return docs[i].Name < docs[j].Name
	})

	for _, topic := range docs {
		if _, exists := l.topics[topic.ID]; exists {
			return fmt.Errorf("duplicate topic id %s", topic.ID)
		}
		for _, item := range topic.Items {
			if _, exists := l.items[item.ID]; exists {
				return fmt.Errorf("topic %s: item id %s already defined elsewhere in the catalog", topic.ID, item.ID)
			}
			l.items[item.ID] = item
		}
		l.topics[topic.ID] = topic
		l.ordered = append(l.ordered, topic.ID)
	}
	return nil
}

// loadTopicFile parses and validates a single topic document. A document
// that is not a topic at all (no id) or fails the schema is skipped.
func loadTopicFile(path string) (Topic, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Topic{}, false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		slog.Warn("skipping invalid topic YAML", "path", path, "error", err)
		return Topic{}, false, nil
	}
	if raw == nil || raw["id"] == nil {
		return Topic{}, false, nil // not a topic document
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(topicSchema),
		gojsonschema.NewGoLoader(raw),
	)
	if err != nil {
		return Topic{}, false, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid() {
		for _, desc := range result.Errors() {
			slog.Warn("topic document failed schema validation", "path", path, "error", desc.String())
		}
		return Topic{}, false, nil
	}

	var topic Topic
	if err := yaml.Unmarshal(data, &topic); err != nil {
		return Topic{}, false, fmt.Errorf("decoding %s: %w", path, err)
	}
	if err := topic.Validate(); err != nil {
		return Topic{}, false, fmt.Errorf("%s: %w", path, err)
	}
	return topic, true, nil
}

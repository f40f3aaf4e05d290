package progress

import (
	"context"
	"sync"
)

// Storage slot names. Every value is JSON-serializable and scoped to
// one user.
const (
	slotCompletionMap = "progress.completionMap"
	slotPoints        = "progress.points"
	slotLevel         = "progress.level"
	slotLanguage      = "i18n.selectedLanguage"
)

// State is the per-user points/level pair. Level is always the largest
// threshold level whose point requirement is at or below Points.
type State struct {
	Points int `json:"points"`
	Level  int `json:"level"`
}

// DefaultState is what a user starts with and returns to on reset.
var DefaultState = State{Points: 0, Level: 1}

// Store persists per-user progress in durable key-value storage.
// Implementations return defaults (empty map, zero points, level 1)
// when a slot has never been written.
type Store interface {
	Completion(ctx context.Context, userID string) (CompletionMap, error)
	SaveCompletion(ctx context.Context, userID string, cm CompletionMap) error
	State(ctx context.Context, userID string) (State, error)
	SaveState(ctx context.Context, userID string, st State) error
	Language(ctx context.Context, userID string) (string, error)
	SaveLanguage(ctx context.Context, userID, lang string) error
	Reset(ctx context.Context, userID string) error
}

// MemoryStore is an in-memory Store for tests and single-process use.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]map[string]any // userID -> slot -> value
}

// NewMemoryStore creates an empty in-memory progress store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]map[string]any)}
}

func (s *MemoryStore) Completion(_ context.Context, userID string) (CompletionMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.slots[userID][slotCompletionMap]; ok {
		stored := v.(CompletionMap)
		cm := make(CompletionMap, len(stored))
		for id, done := range stored {
			cm[id] = done
		}
		return cm, nil
	}
	return CompletionMap{}, nil
}

func (s *MemoryStore) SaveCompletion(_ context.Context, userID string, cm CompletionMap) error {
	copied := make(CompletionMap, len(cm))
	for id, done := range cm {
		copied[id] = done
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(userID, slotCompletionMap, copied)
	return nil
}

func (s *MemoryStore) State(_ context.Context, userID string) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := DefaultState
	if v, ok := s.slots[userID][slotPoints]; ok {
		st.Points = v.(int)
	}
	if v, ok := s.slots[userID][slotLevel]; ok {
		st.Level = v.(int)
	}
	return st, nil
}

func (s *MemoryStore) SaveState(_ context.Context, userID string, st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(userID, slotPoints, st.Points)
	s.set(userID, slotLevel, st.Level)
	return nil
}

func (s *MemoryStore) Language(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.slots[userID][slotLanguage]; ok {
		return v.(string), nil
	}
	return "", nil
}

func (s *MemoryStore) SaveLanguage(_ context.Context, userID, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(userID, slotLanguage, lang)
	return nil
}

func (s *MemoryStore) Reset(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(userID, slotCompletionMap, CompletionMap{})
	s.set(userID, slotPoints, DefaultState.Points)
	s.set(userID, slotLevel, DefaultState.Level)
	return nil
}

func (s *MemoryStore) set(userID, slot string, value any) {
	if s.slots[userID] == nil {
		s.slots[userID] = make(map[string]any)
	}
	s.slots[userID][slot] = value
}

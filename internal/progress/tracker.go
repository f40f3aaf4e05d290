package progress

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Notifier receives level-up events. Delivery is fire-and-forget: the
// tracker never fails a toggle because a notification could not be sent.
type Notifier interface {
	LevelUp(ctx context.Context, userID string, newLevel int, prize string)
}

// NopNotifier drops all events.
type NopNotifier struct{}

func (NopNotifier) LevelUp(context.Context, string, int, string) {}

// LevelUpEvent is a recorded level-up, used by MemoryNotifier.
type LevelUpEvent struct {
	UserID   string `json:"user_id"`
	NewLevel int    `json:"new_level"`
	Prize    string `json:"prize,omitempty"`
}

// MemoryNotifier records events in memory for tests.
type MemoryNotifier struct {
	mu     sync.Mutex
	events []LevelUpEvent
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{events: []LevelUpEvent{}}
}

func (n *MemoryNotifier) LevelUp(_ context.Context, userID string, newLevel int, prize string) {
	n.mu.Lock()
	n.events = append(n.events, LevelUpEvent{UserID: userID, NewLevel: newLevel, Prize: prize})
	n.mu.Unlock()
}

func (n *MemoryNotifier) Events() []LevelUpEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]LevelUpEvent{}, n.events...)
}

// TrackerConfig holds dependencies for the progress tracker.
type TrackerConfig struct {
	Store      Store
	Thresholds []Threshold // defaults to DefaultThresholds
	Notifier   Notifier    // defaults to NopNotifier
}

// Tracker coordinates completion toggles: it flips the completion flag,
// applies the matching point delta, and persists both as one step. A
// mutex keeps the read-flip-write sequence from interleaving across
// concurrent requests for different users; per-user state is small
// enough that one lock serves the whole tracker.
type Tracker struct {
	store      Store
	thresholds []Threshold
	notifier   Notifier
	mu         sync.Mutex
}

// NewTracker creates a tracker. The threshold table is validated up
// front; a malformed table is a configuration error.
func NewTracker(cfg TrackerConfig) (*Tracker, error) {
	thresholds := cfg.Thresholds
	if thresholds == nil {
		thresholds = DefaultThresholds
	}
	if err := ValidateThresholds(thresholds); err != nil {
		return nil, fmt.Errorf("threshold table: %w", err)
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}
	return &Tracker{store: store, thresholds: thresholds, notifier: notifier}, nil
}

// Thresholds returns the validated threshold table in use.
func (t *Tracker) Thresholds() []Threshold {
	return t.thresholds
}

// ToggleResult describes the state after a completion toggle.
type ToggleResult struct {
	ItemID    string `json:"item_id"`
	Completed bool   `json:"completed"`
	Points    int    `json:"points"`
	Level     int    `json:"level"`
	LeveledUp bool   `json:"leveled_up"`
	Prize     string `json:"prize,omitempty"`
}

// ToggleCompletion flips the completion flag for an item and applies
// the matching point delta (+pointsForItem on complete, -pointsForItem
// on un-complete). Completion map and points/level always change
// together; no intermediate state is observable. Persistence failures
// are logged and skipped: the loss of one toggle is acceptable for this
// locally-scoped data.
func (t *Tracker) ToggleCompletion(ctx context.Context, userID, itemID string, pointsForItem int) (ToggleResult, error) {
	if itemID == "" {
		return ToggleResult{}, fmt.Errorf("item id is empty")
	}
	if pointsForItem < 0 {
		return ToggleResult{}, fmt.Errorf("item points must not be negative")
	}

	t.mu.Lock()

	cm := t.completion(ctx, userID)
	st := t.state(ctx, userID)

	completed := !cm[itemID]
	if completed {
		cm[itemID] = true
	} else {
		delete(cm, itemID)
	}

	delta := pointsForItem
	if !completed {
		delta = -pointsForItem
	}
	level := ApplyPoints(st.Points, delta, t.thresholds)
	st = State{Points: level.NewPoints, Level: level.NewLevel}

	t.persist(ctx, userID, cm, st)
	t.mu.Unlock()

	// Notify after releasing the lock: a slow notifier (a stalled
	// websocket subscriber, say) must not block other users' toggles.
	if level.LeveledUp {
		t.notifier.LevelUp(ctx, userID, level.NewLevel, level.Prize)
	}

	return ToggleResult{
		ItemID:    itemID,
		Completed: completed,
		Points:    st.Points,
		Level:     st.Level,
		LeveledUp: level.LeveledUp,
		Prize:     level.Prize,
	}, nil
}

// Snapshot returns the user's current completion map and state.
func (t *Tracker) Snapshot(ctx context.Context, userID string) (CompletionMap, State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completion(ctx, userID), t.state(ctx, userID)
}

// ResetAll clears the completion map and returns points/level to their
// defaults in one step.
func (t *Tracker) ResetAll(ctx context.Context, userID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Reset(ctx, userID); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

// completion reads the stored completion map, falling back to empty on
// storage errors.
func (t *Tracker) completion(ctx context.Context, userID string) CompletionMap {
	cm, err := t.store.Completion(ctx, userID)
	if err != nil {
		slog.Warn("reading completion map failed, using defaults", "user_id", userID, "error", err)
		return CompletionMap{}
	}
	return cm
}

func (t *Tracker) state(ctx context.Context, userID string) State {
	st, err := t.store.State(ctx, userID)
	if err != nil {
		slog.Warn("reading progress state failed, using defaults", "user_id", userID, "error", err)
		return DefaultState
	}
	return st
}

func (t *Tracker) persist(ctx context.Context, userID string, cm CompletionMap, st State) {
	if err := t.store.SaveCompletion(ctx, userID, cm); err != nil {
		slog.Warn("persisting completion map failed, skipping", "user_id", userID, "error", err)
		return
	}
	if err := t.store.SaveState(ctx, userID, st); err != nil {
		slog.Warn("persisting progress state failed, skipping", "user_id", userID, "error", err)
	}
}

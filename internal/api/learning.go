package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/eduflow-app/eduflow/internal/catalog"
	"github.com/eduflow-app/eduflow/internal/export"
	"github.com/eduflow-app/eduflow/internal/progress"
	"github.com/eduflow-app/eduflow/internal/roadmap"
	"github.com/eduflow-app/eduflow/internal/suggest"
)

const (
	defaultRoadmapDays = 7
	xlsxContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (h *Handler) handleTopics(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]any{"topics": h.catalog.Topics()})
}

func (h *Handler) handleTopic(w http.ResponseWriter, r *http.Request) {
	topic, ok := h.catalog.Topic(r.PathValue("id"))
	if !ok {
		respondError(w, http.StatusNotFound, "unknown topic")
		return
	}
	respond(w, http.StatusOK, topic)
}

type progressResponse struct {
	Summary       progress.Summary       `json:"summary"`
	State         progress.State         `json:"state"`
	Completed     progress.CompletionMap `json:"completed"`
	NextThreshold *progress.Threshold    `json:"next_threshold,omitempty"`
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	cm, state := h.tracker.Snapshot(r.Context(), userID)
	resp := progressResponse{
		Summary:   progress.Aggregate(h.catalog.Topics(), cm),
		State:     state,
		Completed: cm,
	}
	if next, ok := progress.NextThreshold(state.Level, h.tracker.Thresholds()); ok {
		resp.NextThreshold = &next
	}
	respond(w, http.StatusOK, resp)
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	var req struct {
		ItemID string `json:"item_id"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, ok := h.catalog.Item(req.ItemID)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown item")
		return
	}

	result, err := h.tracker.ToggleCompletion(r.Context(), userID, item.ID, item.Points)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respond(w, http.StatusOK, result)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid session")
		return
	}
	if err := h.tracker.ResetAll(r.Context(), userID); err != nil {
		slog.Error("resetting progress", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "reset"})
}

// planFromQuery resolves the topic and day count shared by the roadmap
// view and its export.
func (h *Handler) planFromQuery(r *http.Request) (catalog.Topic, []roadmap.DailyPlan, int, error) {
	topicID := r.URL.Query().Get("topic")
	if topicID == "" {
		return catalog.Topic{}, nil, http.StatusBadRequest, fmt.Errorf("topic query parameter is required")
	}
	topic, ok := h.catalog.Topic(topicID)
	if !ok {
		return catalog.Topic{}, nil, http.StatusNotFound, fmt.Errorf("unknown topic")
	}

	days := defaultRoadmapDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return catalog.Topic{}, nil, http.StatusBadRequest, fmt.Errorf("days must be an integer")
		}
		days = parsed
	}

	plans, err := roadmap.Plan(topic.Items, days)
	if err != nil {
		return catalog.Topic{}, nil, http.StatusBadRequest, err
	}
	return topic, plans, http.StatusOK, nil
}

func (h *Handler) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	topic, plans, status, err := h.planFromQuery(r)
	if err != nil {
		respondError(w, status, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"topic_id": topic.ID,
		"days":     len(plans),
		"plan":     plans,
	})
}

func (h *Handler) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goal  string `json:"goal"`
		Level string `json:"level"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := suggest.ParseGoal(req.Goal)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	level, err := suggest.ParseLevel(req.Level)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respond(w, http.StatusOK, suggest.Suggest(goal, level))
}

func (h *Handler) handleExportRoadmap(w http.ResponseWriter, r *http.Request) {
	topic, plans, status, err := h.planFromQuery(r)
	if err != nil {
		respondError(w, status, err.Error())
		return
	}

	f, err := export.RoadmapWorkbook(topic, plans)
	if err != nil {
		slog.Error("building roadmap workbook", "topic", topic.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "roadmap-"+topic.ID+".xlsx"))
	if err := f.Write(w); err != nil {
		slog.Error("writing roadmap workbook", "topic", topic.ID, "error", err)
	}
}

func (h *Handler) handleExportProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	cm, state := h.tracker.Snapshot(r.Context(), userID)
	topics := h.catalog.Topics()

	f, err := export.ProgressWorkbook(topics, progress.Aggregate(topics, cm), state)
	if err != nil {
		slog.Error("building progress workbook", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="progress.xlsx"`)
	if err := f.Write(w); err != nil {
		slog.Error("writing progress workbook", "user_id", userID, "error", err)
	}
}

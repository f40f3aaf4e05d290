package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/eduflow-app/eduflow/internal/api"
	"github.com/eduflow-app/eduflow/internal/auth"
	"github.com/eduflow-app/eduflow/internal/catalog"
	"github.com/eduflow-app/eduflow/internal/i18n"
	"github.com/eduflow-app/eduflow/internal/progress"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "react-basics.yaml"), []byte(`
id: react-basics
name: "React Basics"
description: "Fundamental concepts of React."
difficulty: easy
sequence: 1
items:
  - id: react-intro
    title: "Introduction to React"
    type: article
    url: "https://react.dev/learn"
    points: 10
  - id: react-components
    title: "Understanding Components"
    type: video
    url: "https://example.com/react-components"
    points: 15
  - id: react-hooks
    title: "Hooks in Depth"
    type: video
    url: "https://example.com/react-hooks"
    points: 20
`), 0o644)

	loader, err := catalog.NewLoader(dir)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	store := progress.NewMemoryStore()
	tracker, err := progress.NewTracker(progress.TrackerConfig{Store: store})
	if err != nil {
		t.Fatalf("NewTracker() error = %v", err)
	}

	handler, err := api.New(api.Config{
		Catalog: loader,
		Tracker: tracker,
		Store:   store,
		Auth:    auth.NewService(auth.ServiceConfig{}),
		Bundle:  i18n.NewBundle(),
	})
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}
	return handler.Routes()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestHandler(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, h, http.MethodGet, path, nil, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestTopics(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/topics", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/topics = %d, want 200", rec.Code)
	}
	var resp struct {
		Topics []catalog.Topic `json:"topics"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Topics) != 1 || resp.Topics[0].ID != "react-basics" {
		t.Errorf("topics = %+v, want one react-basics topic", resp.Topics)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/topics/react-basics", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/topics/react-basics = %d, want 200", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/topics/nope", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /api/topics/nope = %d, want 404", rec.Code)
	}
}

func TestToggleAndProgress(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/progress/toggle", map[string]string{"item_id": "react-intro"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle = %d, body %s", rec.Code, rec.Body.String())
	}
	var result progress.ToggleResult
	decodeBody(t, rec, &result)
	if !result.Completed || result.Points != 10 {
		t.Errorf("toggle result = %+v, want completed with 10 points", result)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/progress", nil, nil)
	var resp struct {
		Summary       progress.Summary    `json:"summary"`
		State         progress.State      `json:"state"`
		NextThreshold *progress.Threshold `json:"next_threshold"`
	}
	decodeBody(t, rec, &resp)
	if resp.Summary.Overall.Completed != 1 || resp.Summary.Overall.Total != 3 {
		t.Errorf("overall = %+v, want 1/3", resp.Summary.Overall)
	}
	if resp.Summary.Overall.Percentage != 33 {
		t.Errorf("percentage = %d, want 33", resp.Summary.Overall.Percentage)
	}
	if resp.State.Points != 10 || resp.State.Level != 1 {
		t.Errorf("state = %+v, want 10 points at level 1", resp.State)
	}
	if resp.NextThreshold == nil || resp.NextThreshold.Level != 2 {
		t.Errorf("next_threshold = %+v, want level 2", resp.NextThreshold)
	}
}

func TestToggleUnknownItem(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/progress/toggle", map[string]string{"item_id": "ghost"}, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("toggle unknown item = %d, want 404", rec.Code)
	}
}

func TestProgressScopedPerUser(t *testing.T) {
	h := newTestHandler(t)

	doJSON(t, h, http.MethodPost, "/api/progress/toggle",
		map[string]string{"item_id": "react-intro"}, map[string]string{"X-User": "alice"})

	rec := doJSON(t, h, http.MethodGet, "/api/progress", nil, map[string]string{"X-User": "bob"})
	var resp struct {
		State progress.State `json:"state"`
	}
	decodeBody(t, rec, &resp)
	if resp.State.Points != 0 {
		t.Errorf("bob's points = %d, want 0 (alice's toggle must not leak)", resp.State.Points)
	}
}

func TestReset(t *testing.T) {
	h := newTestHandler(t)

	doJSON(t, h, http.MethodPost, "/api/progress/toggle", map[string]string{"item_id": "react-intro"}, nil)
	rec := doJSON(t, h, http.MethodPost, "/api/progress/reset", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset = %d, want 200", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/progress", nil, nil)
	var resp struct {
		State progress.State `json:"state"`
	}
	decodeBody(t, rec, &resp)
	if resp.State.Points != 0 || resp.State.Level != 1 {
		t.Errorf("state after reset = %+v, want defaults", resp.State)
	}
}

func TestRoadmap(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/roadmap?topic=react-basics&days=2", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("roadmap = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Days int `json:"days"`
		Plan []struct {
			Day   int               `json:"day"`
			Items []json.RawMessage `json:"items"`
		} `json:"plan"`
	}
	decodeBody(t, rec, &resp)
	if resp.Days != 2 || len(resp.Plan) != 2 {
		t.Fatalf("plan = %+v, want 2 days", resp)
	}
	if len(resp.Plan[0].Items) != 2 || len(resp.Plan[1].Items) != 1 {
		t.Errorf("item split = %d/%d, want 2/1", len(resp.Plan[0].Items), len(resp.Plan[1].Items))
	}

	if rec := doJSON(t, h, http.MethodGet, "/api/roadmap?days=2", nil, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("missing topic = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodGet, "/api/roadmap?topic=nope", nil, nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown topic = %d, want 404", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodGet, "/api/roadmap?topic=react-basics&days=0", nil, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("zero days = %d, want 400", rec.Code)
	}
	// An enormous day count is rejected up front instead of allocating
	// billions of empty buckets.
	if rec := doJSON(t, h, http.MethodGet, "/api/roadmap?topic=react-basics&days=2000000000", nil, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("huge days = %d, want 400", rec.Code)
	}
}

func TestSuggest(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/suggest", map[string]string{"goal": "frontend", "level": "beginner"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("suggest = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		TopicIDs  []string `json:"topic_ids"`
		Narrative string   `json:"narrative"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.TopicIDs) == 0 || resp.TopicIDs[0] != "css-fundamentals" {
		t.Errorf("topic_ids = %v, want css-fundamentals first", resp.TopicIDs)
	}
	if resp.Narrative == "" {
		t.Error("narrative is empty")
	}

	rec = doJSON(t, h, http.MethodPost, "/api/suggest", map[string]string{"goal": "astronaut", "level": "beginner"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown goal = %d, want 400", rec.Code)
	}
}

func TestExportEndpoints(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/export/roadmap?topic=react-basics&days=2", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export roadmap = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("workbook body is empty")
	}

	rec = doJSON(t, h, http.MethodGet, "/api/export/progress", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export progress = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd == "" {
		t.Error("Content-Disposition missing")
	}
}

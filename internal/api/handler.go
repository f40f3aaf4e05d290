// Package api exposes the HTTP surface: catalog browsing, progress
// tracking, roadmap planning, suggestions, identity, translations, and
// spreadsheet exports. Handlers stay thin; all behavior lives in the
// domain packages.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"github.com/eduflow-app/eduflow/internal/auth"
	"github.com/eduflow-app/eduflow/internal/catalog"
	"github.com/eduflow-app/eduflow/internal/i18n"
	"github.com/eduflow-app/eduflow/internal/notify"
	"github.com/eduflow-app/eduflow/internal/progress"
)

// anonymousUser scopes state for requests without a session. Browsing,
// progress tracking, and planning all work without an account.
const anonymousUser = "local"

// Config holds the handler's dependencies.
type Config struct {
	Catalog *catalog.Loader
	Tracker *progress.Tracker
	Store   progress.Store
	Auth    *auth.Service
	Bundle  *i18n.Bundle
	Hub     *notify.Hub

	AllowedOrigins []string
	Ready          func(context.Context) error // optional readiness probe
}

// Handler serves the HTTP API.
type Handler struct {
	catalog *catalog.Loader
	tracker *progress.Tracker
	store   progress.Store
	auth    *auth.Service
	bundle  *i18n.Bundle
	hub     *notify.Hub
	origins []string
	ready   func(context.Context) error
}

// New creates a handler. Every dependency except Hub and Ready is
// required.
func New(cfg Config) (*Handler, error) {
	switch {
	case cfg.Catalog == nil:
		return nil, fmt.Errorf("catalog loader is required")
	case cfg.Tracker == nil:
		return nil, fmt.Errorf("progress tracker is required")
	case cfg.Store == nil:
		return nil, fmt.Errorf("progress store is required")
	case cfg.Auth == nil:
		return nil, fmt.Errorf("auth service is required")
	case cfg.Bundle == nil:
		return nil, fmt.Errorf("i18n bundle is required")
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Handler{
		catalog: cfg.Catalog,
		tracker: cfg.Tracker,
		store:   cfg.Store,
		auth:    cfg.Auth,
		bundle:  cfg.Bundle,
		hub:     cfg.Hub,
		origins: origins,
		ready:   cfg.Ready,
	}, nil
}

// Routes builds the router with CORS applied to the whole surface.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.HandleFunc("GET /readyz", h.handleReadyz)

	mux.HandleFunc("GET /api/topics", h.handleTopics)
	mux.HandleFunc("GET /api/topics/{id}", h.handleTopic)

	mux.HandleFunc("GET /api/progress", h.handleProgress)
	mux.HandleFunc("POST /api/progress/toggle", h.handleToggle)
	mux.HandleFunc("POST /api/progress/reset", h.handleReset)

	mux.HandleFunc("GET /api/roadmap", h.handleRoadmap)
	mux.HandleFunc("POST /api/suggest", h.handleSuggest)

	mux.HandleFunc("GET /api/export/roadmap", h.handleExportRoadmap)
	mux.HandleFunc("GET /api/export/progress", h.handleExportProgress)

	mux.HandleFunc("POST /api/auth/signup", h.handleSignUp)
	mux.HandleFunc("POST /api/auth/signin", h.handleSignIn)
	mux.HandleFunc("POST /api/auth/signout", h.handleSignOut)
	mux.HandleFunc("GET /api/auth/me", h.handleMe)

	mux.HandleFunc("GET /api/profile", h.handleProfileGet)
	mux.HandleFunc("PUT /api/profile", h.handleProfilePut)

	mux.HandleFunc("GET /api/i18n", h.handleLanguageGet)
	mux.HandleFunc("PUT /api/i18n", h.handleLanguagePut)
	mux.HandleFunc("GET /api/i18n/{locale}", h.handleTranslationTable)

	mux.HandleFunc("GET /ws/events", h.handleEvents)

	c := cors.New(cors.Options{
		AllowedOrigins: h.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-User"},
	})
	return c.Handler(mux)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			slog.Warn("readiness probe failed", "error", err)
			respondError(w, http.StatusServiceUnavailable, "not ready")
			return
		}
	}
	respond(w, http.StatusOK, map[string]string{"status": "ready"})
}

// identity resolves the user a request acts for. A Bearer token must
// resolve to a live session; without one the X-User header or the
// anonymous user applies.
func (h *Handler) identity(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		user, err := h.auth.CurrentUser(r.Context(), strings.TrimSpace(token))
		if err != nil {
			return "", err
		}
		return user.ID, nil
	}
	if u := strings.TrimSpace(r.Header.Get("X-User")); u != "" {
		return u, nil
	}
	return anonymousUser, nil
}

// bearerToken extracts the raw session token, or "" when absent.
func bearerToken(r *http.Request) string {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, http.StatusNotFound, "event stream disabled")
		return
	}
	userID, err := h.identity(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid session")
		return
	}
	h.hub.Subscribe(w, r, userID)
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

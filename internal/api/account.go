package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/eduflow-app/eduflow/internal/auth"
)

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		RedirectTo string `json:"redirect_to"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.auth.SignUp(r.Context(), req.Email, req.Password, req.RedirectTo)
	if errors.Is(err, auth.ErrUserExists) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respond(w, http.StatusCreated, result)
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		slog.Error("sign-in failed", "error", err)
		respondError(w, http.StatusInternalServerError, "sign-in failed")
		return
	}
	respond(w, http.StatusOK, session)
}

func (h *Handler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context(), bearerToken(r)); err != nil {
		slog.Error("sign-out failed", "error", err)
		respondError(w, http.StatusInternalServerError, "sign-out failed")
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.CurrentUser(r.Context(), bearerToken(r))
	if errors.Is(err, auth.ErrNoSession) {
		respondError(w, http.StatusUnauthorized, "no active session")
		return
	}
	if err != nil {
		slog.Error("session lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "session lookup failed")
		return
	}
	respond(w, http.StatusOK, user)
}

func (h *Handler) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	profile, err := h.auth.FetchProfile(r.Context(), userID)
	if errors.Is(err, auth.ErrNotFound) {
		respondError(w, http.StatusNotFound, "no profile saved yet")
		return
	}
	if err != nil {
		slog.Error("fetching profile", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "profile lookup failed")
		return
	}
	respond(w, http.StatusOK, profile)
}

func (h *Handler) handleProfilePut(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	var req struct {
		FullName  string `json:"full_name"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.auth.UpsertProfile(r.Context(), userID, req.FullName, req.AvatarURL); err != nil {
		slog.Error("saving profile", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "saving profile failed")
		return
	}

	profile, err := h.auth.FetchProfile(r.Context(), userID)
	if err != nil {
		respond(w, http.StatusOK, map[string]string{"status": "saved"})
		return
	}
	respond(w, http.StatusOK, profile)
}

// handleLanguageGet reports the user's saved language selection and the
// locales the server can serve. Without a saved selection the client's
// Accept-Language preference decides, then the default locale.
func (h *Handler) handleLanguageGet(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	lang, err := h.store.Language(r.Context(), userID)
	if err != nil {
		slog.Warn("reading language selection failed, using default", "user_id", userID, "error", err)
		lang = ""
	}
	if lang == "" {
		lang = h.bundle.Resolve(r.Header.Get("Accept-Language"))
	}
	respond(w, http.StatusOK, map[string]any{
		"language": lang,
		"locales":  h.bundle.Locales(),
	})
}

// handleLanguagePut saves the user's language selection. The requested
// code is resolved first, so an unsupported locale silently becomes the
// default rather than an error.
func (h *Handler) handleLanguagePut(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	var req struct {
		Language string `json:"language"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resolved := h.bundle.Resolve(req.Language)
	if err := h.store.SaveLanguage(r.Context(), userID, resolved); err != nil {
		slog.Error("saving language selection", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "saving language failed")
		return
	}
	respond(w, http.StatusOK, map[string]string{"language": resolved})
}

func (h *Handler) handleTranslationTable(w http.ResponseWriter, r *http.Request) {
	requested := r.PathValue("locale")
	respond(w, http.StatusOK, map[string]any{
		"locale": h.bundle.Resolve(requested),
		"table":  h.bundle.Table(requested),
	})
}

package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// ServiceConfig holds dependencies for the auth service.
type ServiceConfig struct {
	Store      Store
	SessionTTL time.Duration // defaults to 7 days
}

// Service implements the identity/profile operations on top of a Store.
type Service struct {
	store      Store
	sessionTTL time.Duration
}

// NewService creates an auth service.
func NewService(cfg ServiceConfig) *Service {
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore(nil)
	}
	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = defaultSessionTTL
	}
	return &Service{store: store, sessionTTL: ttl}
}

// SignUp registers a new account. The redirect target is echoed back so
// the caller can continue its confirmation flow.
func (s *Service) SignUp(ctx context.Context, email, password, redirectTarget string) (SignUpResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return SignUpResult{}, fmt.Errorf("invalid email address")
	}
	if len(password) < 8 {
		return SignUpResult{}, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return SignUpResult{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, email, hash)
	if err != nil {
		return SignUpResult{}, err
	}

	slog.Info("user signed up", "user_id", user.ID)
	return SignUpResult{User: user, RedirectTarget: redirectTarget}, nil
}

// SignIn verifies credentials and issues a session.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	user, hash, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}

	now := time.Now()
	session := Session{
		Token:     randomToken(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return Session{}, fmt.Errorf("creating session: %w", err)
	}

	slog.Info("user signed in", "user_id", user.ID)
	return session, nil
}

// SignOut invalidates a session. Signing out an unknown token is a
// no-op.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.DeleteSession(ctx, token); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// CurrentUser resolves a session token to its user. Expired or unknown
// sessions yield ErrNoSession.
func (s *Service) CurrentUser(ctx context.Context, token string) (User, error) {
	if token == "" {
		return User{}, ErrNoSession
	}
	session, err := s.store.SessionByToken(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrNoSession
	}
	if err != nil {
		return User{}, fmt.Errorf("looking up session: %w", err)
	}
	if time.Now().After(session.ExpiresAt) {
		// Expired sessions are deleted lazily on first use.
		_ = s.store.DeleteSession(ctx, token)
		return User{}, ErrNoSession
	}
	return s.store.UserByID(ctx, session.UserID)
}

// UpsertProfile creates or replaces a user's display profile.
func (s *Service) UpsertProfile(ctx context.Context, userID, fullName, avatarURL string) error {
	if userID == "" {
		return fmt.Errorf("user id is empty")
	}
	err := s.store.UpsertProfile(ctx, Profile{
		UserID:    userID,
		FullName:  fullName,
		AvatarURL: avatarURL,
	})
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

// FetchProfile returns a user's profile, or ErrNotFound when none has
// been saved yet. A missing profile is a normal state for new users.
func (s *Service) FetchProfile(ctx context.Context, userID string) (Profile, error) {
	return s.store.ProfileByUserID(ctx, userID)
}

func randomToken() string {
	// crypto/rand.Read never returns an error; it crashes the process if
	// the platform's entropy source is broken.
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%x", b)
}

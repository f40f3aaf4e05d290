// Package auth is the gateway to identity and profile persistence:
// sign-in, sign-up, sign-out, session lookup, and profile upsert.
// Failures are surfaced once as tagged errors; nothing here retries
// automatically.
package auth

import (
	"errors"
	"time"
)

// Tagged failures callers branch on with errors.Is.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("a user with this email already exists")
	ErrNoSession          = errors.New("no active session")
	ErrNotFound           = errors.New("not found")
)

// User is an authenticated account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is an issued sign-in token and its owner.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Profile is the user-editable display profile.
type Profile struct {
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SignUpResult tells the caller where the flow continues (the original
// flow redirects to an email-confirmation landing page).
type SignUpResult struct {
	User           User   `json:"user"`
	RedirectTarget string `json:"redirect_target,omitempty"`
}

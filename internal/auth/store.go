package auth

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Store persists users, their credential hashes, sessions, and profiles.
type Store interface {
	CreateUser(ctx context.Context, email string, passwordHash []byte) (User, error)
	UserByEmail(ctx context.Context, email string) (User, []byte, error)
	UserByID(ctx context.Context, id string) (User, error)

	CreateSession(ctx context.Context, s Session) error
	SessionByToken(ctx context.Context, token string) (Session, error)
	DeleteSession(ctx context.Context, token string) error

	UpsertProfile(ctx context.Context, p Profile) error
	ProfileByUserID(ctx context.Context, userID string) (Profile, error)
}

// MemoryStore is an in-memory Store for tests and single-process use.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]User   // by id
	byEmail  map[string]string // lowercased email -> id
	hashes   map[string][]byte // id -> password hash
	sessions map[string]Session
	profiles map[string]Profile
	nextID   func() string
}

// NewMemoryStore creates an empty in-memory auth store. newID supplies
// user ids; pass nil to use a random default.
func NewMemoryStore(newID func() string) *MemoryStore {
	if newID == nil {
		newID = randomToken
	}
	return &MemoryStore{
		users:    make(map[string]User),
		byEmail:  make(map[string]string),
		hashes:   make(map[string][]byte),
		sessions: make(map[string]Session),
		profiles: make(map[string]Profile),
		nextID:   newID,
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, email string, passwordHash []byte) (User, error) {
	key := strings.ToLower(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return User{}, ErrUserExists
	}
	user := User{ID: s.nextID(), Email: email, CreatedAt: time.Now()}
	s.users[user.ID] = user
	s.byEmail[key] = user.ID
	s.hashes[user.ID] = append([]byte{}, passwordHash...)
	return user, nil
}

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (User, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return User{}, nil, ErrNotFound
	}
	return s.users[id], append([]byte{}, s.hashes[id]...), nil
}

func (s *MemoryStore) UserByID(_ context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryStore) CreateSession(_ context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return nil
}

func (s *MemoryStore) SessionByToken(_ context.Context, token string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *MemoryStore) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) UpsertProfile(_ context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.UpdatedAt = time.Now()
	s.profiles[p.UserID] = p
	return nil
}

func (s *MemoryStore) ProfileByUserID(_ context.Context, userID string) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

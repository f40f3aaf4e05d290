package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const storeTimeout = 3 * time.Second

// RedisStore is a Redis-backed Store. Each storage slot is one string
// key holding a JSON value, namespaced per user.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed progress store.
func NewRedisStore(client *redis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	return &RedisStore{client: client}, nil
}

func slotKey(userID, slot string) string {
	return "eduflow:user:" + userID + ":" + slot
}

func (s *RedisStore) Completion(ctx context.Context, userID string) (CompletionMap, error) {
	cm := CompletionMap{}
	if err := s.read(ctx, userID, slotCompletionMap, &cm); err != nil {
		return nil, err
	}
	return cm, nil
}

func (s *RedisStore) SaveCompletion(ctx context.Context, userID string, cm CompletionMap) error {
	return s.write(ctx, userID, slotCompletionMap, cm)
}

func (s *RedisStore) State(ctx context.Context, userID string) (State, error) {
	st := DefaultState
	if err := s.read(ctx, userID, slotPoints, &st.Points); err != nil {
		return State{}, err
	}
	if err := s.read(ctx, userID, slotLevel, &st.Level); err != nil {
		return State{}, err
	}
	return st, nil
}

func (s *RedisStore) SaveState(ctx context.Context, userID string, st State) error {
	if err := s.write(ctx, userID, slotPoints, st.Points); err != nil {
		return err
	}
	return s.write(ctx, userID, slotLevel, st.Level)
}

func (s *RedisStore) Language(ctx context.Context, userID string) (string, error) {
	var lang string
	if err := s.read(ctx, userID, slotLanguage, &lang); err != nil {
		return "", err
	}
	return lang, nil
}

func (s *RedisStore) SaveLanguage(ctx context.Context, userID, lang string) error {
	return s.write(ctx, userID, slotLanguage, lang)
}

func (s *RedisStore) Reset(ctx context.Context, userID string) error {
	if err := s.write(ctx, userID, slotCompletionMap, CompletionMap{}); err != nil {
		return err
	}
	return s.SaveState(ctx, userID, DefaultState)
}

// read decodes the slot's JSON value into dst, leaving dst untouched
// when the slot has never been written.
func (s *RedisStore) read(ctx context.Context, userID, slot string, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, slotKey(userID, slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", slot, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", slot, err)
	}
	return nil
}

func (s *RedisStore) write(ctx context.Context, userID, slot string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", slot, err)
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.client.Set(ctx, slotKey(userID, slot), data, 0).Err(); err != nil {
		return fmt.Errorf("write %s: %w", slot, err)
	}
	return nil
}

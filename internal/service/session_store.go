package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore хранит живые сессии на стороне сервера. Токен считается
// действительным, только пока его идентификатор присутствует в
// хранилище, что даёт серверный отзыв сессии при выходе.
type SessionStore interface {
	Put(ctx context.Context, sessionID string, username string, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (string, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// MemorySessionStore — in-memory реализация для development и тестов.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
}

type memorySession struct {
	username  string
	expiresAt time.Time
}

// NewMemorySessionStore создаёт пустое хранилище сессий.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]memorySession)}
}

func (s *MemorySessionStore) Put(ctx context.Context, sessionID string, username string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memorySession{username: username, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (string, bool, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if time.Now().After(sess.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return "", false, nil
	}

	return sess.username, true, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// RedisSessionStore хранит сессии в Redis, переживая рестарты процесса.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore подключается к Redis и проверяет соединение.
func NewRedisSessionStore(ctx context.Context, addr, password string, db int) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("session store: не удалось подключиться к Redis: %w", err)
	}

	return &RedisSessionStore{client: client}, nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func (s *RedisSessionStore) Put(ctx context.Context, sessionID string, username string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(sessionID), username, ttl).Err(); err != nil {
		return fmt.Errorf("session store: put %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (string, bool, error) {
	username, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session store: get %w", err)
	}
	return username, true, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("session store: delete %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}

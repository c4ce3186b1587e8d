package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-redis/redis/v8"
)

// LoyaltyStore accumulates reward points per customer email. It is an
// explicit, injectable collaborator rather than ambient state.
type LoyaltyStore interface {
	AddPoints(ctx context.Context, email string, points int64) (int64, error)
	GetPoints(ctx context.Context, email string) (int64, error)
}

type MemoryLoyaltyStore struct {
	mu     sync.Mutex
	points map[string]int64
}

var _ LoyaltyStore = (*MemoryLoyaltyStore)(nil)

func NewMemoryLoyaltyStore() *MemoryLoyaltyStore {
	return &MemoryLoyaltyStore{points: make(map[string]int64)}
}

// AddPoints implements LoyaltyStore.
func (s *MemoryLoyaltyStore) AddPoints(ctx context.Context, email string, points int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := loyaltyKeyEmail(email)
	s.points[key] += points
	return s.points[key], nil
}

// GetPoints implements LoyaltyStore.
func (s *MemoryLoyaltyStore) GetPoints(ctx context.Context, email string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.points[loyaltyKeyEmail(email)], nil
}

// RedisLoyaltyStore keeps balances in Redis so points survive restarts and
// are shared between counter instances.
type RedisLoyaltyStore struct {
	rdb *redis.Client
}

var _ LoyaltyStore = (*RedisLoyaltyStore)(nil)

func NewRedisLoyaltyStore(rdb *redis.Client) *RedisLoyaltyStore {
	return &RedisLoyaltyStore{rdb: rdb}
}

// AddPoints implements LoyaltyStore.
func (s *RedisLoyaltyStore) AddPoints(ctx context.Context, email string, points int64) (int64, error) {
	balance, err := s.rdb.IncrBy(ctx, loyaltyKey(email), points).Result()
	if err != nil {
		return 0, fmt.Errorf("increment loyalty points: %w", err)
	}
	return balance, nil
}

// GetPoints implements LoyaltyStore.
func (s *RedisLoyaltyStore) GetPoints(ctx context.Context, email string) (int64, error) {
	balance, err := s.rdb.Get(ctx, loyaltyKey(email)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read loyalty points: %w", err)
	}
	return balance, nil
}

func loyaltyKeyEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func loyaltyKey(email string) string {
	return "loyalty:" + loyaltyKeyEmail(email)
}

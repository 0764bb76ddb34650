package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const codePrefix = "verify:"

// CodeStore - email -> 인증 코드. 만료는 redis TTL에 맡긴다.
type CodeStore struct {
	rdb *redis.Client
}

func NewCodeStore(rdb *redis.Client) *CodeStore {
	return &CodeStore{rdb: rdb}
}

func codeKey(email string) string {
	return codePrefix + strings.ToLower(strings.TrimSpace(email))
}

func (s *CodeStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.rdb.Set(ctx, codeKey(email), code, ttl).Err()
}

func (s *CodeStore) Get(ctx context.Context, email string) (string, error) {
	val, err := s.rdb.Get(ctx, codeKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *CodeStore) Delete(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, codeKey(email)).Err()
}

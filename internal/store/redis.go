// Redis 기반 key-value 저장소
//
// 하나의 *redis.Client(내부 커넥션 풀)를 프로세스 시작 시 만들어 주입한다.
// 호출 측은 커넥션 획득/반납을 신경 쓰지 않는다.
//
// 환경변수 (config.RedisConfig):
//   - REDIS_ADDR (default: localhost:6379)
//   - REDIS_USERNAME, REDIS_PASSWORD
//   - REDIS_DB (default: 0)
//   - REDIS_POOL_SIZE (default: 10)

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dailywrite/backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound - 키가 없음
var ErrNotFound = errors.New("store: key not found")

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	dbIndex, err := parseInt(cfg.DB, 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	poolSize, err := parseInt(cfg.PoolSize, 10)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_POOL_SIZE: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       dbIndex,
		PoolSize: poolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func parseInt(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

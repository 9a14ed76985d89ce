package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
)

const lessonCountKeyPrefix = "lingua:lessons:count:"

// LessonCounter is the source of truth the cache reads through to.
type LessonCounter interface {
	CountByCategory(ctx context.Context, category entities.Category) (int, error)
}

// Store is the subset of *goredis.Client the cache needs.
type Store interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
}

// LessonCountCache is a read-through cache of per-category lesson totals.
// Redis failures are logged and the source is used directly.
type LessonCountCache struct {
	store  Store
	source LessonCounter
	ttl    time.Duration
	logger *zap.Logger
}

func NewLessonCountCache(store Store, source LessonCounter, ttl time.Duration, logger *zap.Logger) *LessonCountCache {
	return &LessonCountCache{store: store, source: source, ttl: ttl, logger: logger}
}

func (c *LessonCountCache) CountByCategory(ctx context.Context, category entities.Category) (int, error) {
	key := lessonCountKeyPrefix + string(category)

	raw, err := c.store.Get(ctx, key).Result()
	switch {
	case err == nil:
		if n, convErr := strconv.Atoi(raw); convErr == nil {
			return n, nil
		}
		c.logger.Warn("corrupt lesson count in cache", zap.String("key", key), zap.String("value", raw))
	case errors.Is(err, goredis.Nil):
	default:
		c.logger.Warn("lesson count cache read failed", zap.String("key", key), zap.Error(err))
	}

	n, err := c.source.CountByCategory(ctx, category)
	if err != nil {
		return 0, err
	}

	if err := c.store.Set(ctx, key, n, c.ttl).Err(); err != nil {
		c.logger.Warn("lesson count cache write failed", zap.String("key", key), zap.Error(err))
	}

	return n, nil
}

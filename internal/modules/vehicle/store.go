// README: Vehicle efficiency cache backed by Redis.
package vehicle

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	mpgKeyPrefix = "vehicle:mpg:%s"
	// Ratings for a given model year never change; the TTL only bounds growth.
	cacheTTL = 30 * 24 * time.Hour
)

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// GetMPG returns the cached combined rating for key, if present.
func (s *Store) GetMPG(ctx context.Context, key string) (float64, bool, error) {
	val, err := s.redis.Get(ctx, mpgKey(key)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	mpg, err := strconv.ParseFloat(val, 64)
	if err != nil || mpg <= 0 {
		return 0, false, nil
	}
	return mpg, true, nil
}

func (s *Store) PutMPG(ctx context.Context, key string, mpg float64) error {
	return s.redis.Set(ctx, mpgKey(key), strconv.FormatFloat(mpg, 'f', -1, 64), cacheTTL).Err()
}

func mpgKey(key string) string {
	return fmt.Sprintf(mpgKeyPrefix, key)
}

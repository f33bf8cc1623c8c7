package sessions

import (
	"github.com/redis/go-redis/v9"

	"github.com/charforge/charforge/internal/uuid"
)

// NewRedis creates a Redis-backed session repository with default wiring
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client:        client,
		UUIDGenerator: uuid.NewGoogleUUIDGenerator(),
		TimeProvider:  &RealTimeProvider{},
	})
}

package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient to allow for easy mocking.
// Both *redis.Client and the redismock client satisfy it.
type Client interface {
	redis.UniversalClient
}

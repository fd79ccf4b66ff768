// Package redis wraps the go-redis client used by the lookup store so the
// store can be tested against miniredis or redismock.
package redis

import (
	"crypto/tls"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options configures Redis client behavior
type Options struct {
	DB              int
	Password        string
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	MaxRetries      int
	UseTLS          bool
}

// NewClient creates a Redis client for a single instance.
// The endpoint may be a host:port pair or a redis:// URL.
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.New("redis: endpoint is required")
	}

	if opts == nil {
		opts = &Options{}
	}

	redisOpts := &redis.Options{Addr: endpoint}
	if strings.HasPrefix(endpoint, "redis://") || strings.HasPrefix(endpoint, "rediss://") {
		parsed, err := redis.ParseURL(endpoint)
		if err != nil {
			return nil, err
		}
		redisOpts = parsed
	}

	if opts.DB != 0 {
		redisOpts.DB = opts.DB
	}
	if opts.Password != "" {
		redisOpts.Password = opts.Password
	}
	redisOpts.MinIdleConns = opts.MinIdleConns
	redisOpts.PoolSize = opts.PoolSize
	redisOpts.ConnMaxIdleTime = opts.ConnMaxIdleTime
	redisOpts.DialTimeout = opts.DialTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.MaxRetries = opts.MaxRetries

	if opts.UseTLS && redisOpts.TLSConfig == nil {
		redisOpts.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402
		}
	}

	return redis.NewClient(redisOpts), nil
}

package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis opens the client that backs the public price cache and the
// snapshot job queues. Ping at boot: a server that cannot reach redis would
// serve stale prices and drop snapshot jobs silently, so it must not start.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

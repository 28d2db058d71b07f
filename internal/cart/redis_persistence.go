package cart

import (
	"context"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "shopping-cart:"

// RedisPersistence keeps one cart snapshot per owner under a fixed namespace
// key, so the cart survives restarts.
type RedisPersistence struct {
	rdb *redis.Client
	key string
}

func NewRedisPersistence(rdb *redis.Client, owner string) *RedisPersistence {
	return &RedisPersistence{rdb: rdb, key: keyPrefix + owner}
}

func (p *RedisPersistence) Load(ctx context.Context) ([]byte, error) {
	data, err := p.rdb.Get(ctx, p.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (p *RedisPersistence) Save(ctx context.Context, data []byte) error {
	return p.rdb.Set(ctx, p.key, data, 0).Err()
}

var _ Persistence = (*RedisPersistence)(nil)

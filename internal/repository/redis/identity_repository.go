package redis

import (
	"context"
	"errors"
	"time"

	"eduease-be/pkg/chat"

	goredis "github.com/redis/go-redis/v9"
)

// IdentityRepository persists display names in Redis so they survive
// restarts and are shared between instances.
type IdentityRepository struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewIdentityRepository stores names for ttl; zero keeps them forever.
func NewIdentityRepository(rdb *goredis.Client, ttl time.Duration) *IdentityRepository {
	return &IdentityRepository{rdb: rdb, ttl: ttl}
}

func Key(sessionId string) string {
	return chat.IdentityKey + ":" + sessionId
}

func (r *IdentityRepository) GetName(ctx context.Context, sessionId string) (string, error) {
	name, err := r.rdb.Get(ctx, Key(sessionId)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	return name, err
}

func (r *IdentityRepository) SetName(ctx context.Context, sessionId, name string) error {
	return r.rdb.Set(ctx, Key(sessionId), name, r.ttl).Err()
}

func (r *IdentityRepository) DeleteName(ctx context.Context, sessionId string) error {
	return r.rdb.Del(ctx, Key(sessionId)).Err()
}

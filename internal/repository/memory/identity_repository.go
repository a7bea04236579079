package memory

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// IdentityRepository is the in-process fallback when Redis is unavailable.
// Names never expire on their own.
type IdentityRepository struct {
	cache *cache.Cache
}

func NewIdentityRepository() *IdentityRepository {
	return &IdentityRepository{cache: cache.New(cache.NoExpiration, 0)}
}

func (r *IdentityRepository) GetName(_ context.Context, sessionId string) (string, error) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(string), nil
	}
	return "", nil
}

func (r *IdentityRepository) SetName(_ context.Context, sessionId, name string) error {
	r.cache.Set(sessionId, name, cache.NoExpiration)
	return nil
}

func (r *IdentityRepository) DeleteName(_ context.Context, sessionId string) error {
	r.cache.Delete(sessionId)
	return nil
}

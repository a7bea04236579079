package memory

import (
	"time"

	"eduease-be/pkg/chat"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository keeps each session for ttl after its last access,
// purging expired entries every ten minutes.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *SessionRepository) Save(session *chat.Session) {
	r.cache.Set(session.Id(), session, cache.DefaultExpiration)
}

// Add stores session unless a live one already holds its id, and returns
// whichever session ends up stored.
func (r *SessionRepository) Add(session *chat.Session) *chat.Session {
	for {
		if err := r.cache.Add(session.Id(), session, cache.DefaultExpiration); err == nil {
			return session
		}
		if existing, ok := r.Get(session.Id()); ok {
			return existing
		}
	}
}

// Get returns the session and slides its expiry forward.
func (r *SessionRepository) Get(sessionId string) (*chat.Session, bool) {
	x, found := r.cache.Get(sessionId)
	if !found {
		return nil, false
	}
	session := x.(*chat.Session)
	r.cache.Set(sessionId, session, cache.DefaultExpiration)
	return session, true
}

func (r *SessionRepository) Delete(sessionId string) {
	r.cache.Delete(sessionId)
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}

package serverutils

import (
	"sync"
	"time"

	"eduease-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client's bucket survives without requests.
const limiterIdleTTL = 10 * time.Minute

type limiterPool struct {
	mu    sync.Mutex
	cache *cache.Cache
	rps   float64
	burst int
}

func newLimiterPool(rps float64, burst int, idle time.Duration) *limiterPool {
	return &limiterPool{
		cache: cache.New(idle, idle),
		rps:   rps,
		burst: burst,
	}
}

func (p *limiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.cache.Get(key); ok {
		l := v.(*rate.Limiter)
		p.cache.SetDefault(key, l)
		return l
	}
	l := rate.NewLimiter(rate.Limit(p.rps), p.burst)
	p.cache.SetDefault(key, l)
	return l
}

// RateLimitMiddleware applies a token bucket per client IP.
func RateLimitMiddleware(rps float64, burst int) fiber.Handler {
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}
	pool := newLimiterPool(rps, burst, limiterIdleTTL)

	return func(ctx *fiber.Ctx) error {
		if !pool.get(ctx.IP()).Allow() {
			return apperror.New(apperror.RateLimited, "Too many requests. Please slow down.")
		}
		return ctx.Next()
	}
}

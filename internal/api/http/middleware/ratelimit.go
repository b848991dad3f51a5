package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client bucket may sit unused before the next
// sweep drops it. Idle buckets are full anyway, so eviction never grants a
// returning client more than a fresh bucket would.
const limiterIdleTTL = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter hands out one token bucket per client IP and sweeps idle entries
// so the map stays bounded on an unauthenticated endpoint.
type ipLimiter struct {
	mu        sync.Mutex
	rps       float64
	burst     int
	clients   map[string]*clientBucket
	lastSweep time.Time
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		rps:     rps,
		burst:   burst,
		clients: make(map[string]*clientBucket),
	}
}

func (l *ipLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for addr, cb := range l.clients {
			if now.Sub(cb.lastSeen) > limiterIdleTTL {
				delete(l.clients, addr)
			}
		}
		l.lastSweep = now
	}

	cb, ok := l.clients[ip]
	if !ok {
		cb = &clientBucket{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.clients[ip] = cb
	}
	cb.lastSeen = now
	return cb.limiter.Allow()
}

// RateLimit applies a per-client-IP token bucket. The share surface is
// unauthenticated, so this is the only brake on token scanning.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	l := newIPLimiter(rps, burst)
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				gin.H{"ok": false, "error": "too many requests"})
			return
		}
		c.Next()
	}
}

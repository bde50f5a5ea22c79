package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// ipLimiter keeps one token bucket per client IP. Idle buckets expire.
type ipLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *expirable.LRU[string, *rate.Limiter]
}

func newIPLimiter(perSecond float64, burst, size int, ttl time.Duration) *ipLimiter {
	if size <= 0 {
		size = 4096
	}
	if burst <= 0 {
		burst = 1
	}
	return &ipLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: expirable.NewLRU[string, *rate.Limiter](size, nil, ttl),
	}
}

func (l *ipLimiter) allow(ip string) bool {
	lim, ok := l.limiters.Get(ip)
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters.Add(ip, lim)
	}
	return lim.Allow()
}

func (l *ipLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			rateLimited.Add(c.Request.Context(), 1)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Too Many Requests",
				"message": "Too many attempts. Please wait and try again.",
			})
			return
		}
		c.Next()
	}
}

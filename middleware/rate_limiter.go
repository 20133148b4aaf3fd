package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"eventkompass/utils"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds a map of client IPs to their rate limiters. The IP is
// gin's ClientIP, so forwarding headers only count from trusted proxies.
type RateLimiter struct {
	limiters  map[string]*clientLimiter
	perMinute int
	now       func() time.Time
	mu        sync.Mutex
}

func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 100
	}
	return &RateLimiter{limiters: make(map[string]*clientLimiter), perMinute: perMinute, now: time.Now}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *RateLimiter) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.limiters[ip]
	if !exists {
		// perMinute requests per minute, all of them available as burst.
		entry = &clientLimiter{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), s.perMinute)}
		s.limiters[ip] = entry
	}
	entry.lastSeen = s.now()
	return entry.limiter
}

// Prune drops limiters of clients not seen for idle and returns how many went.
func (s *RateLimiter) Prune(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for ip, entry := range s.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(s.limiters, ip)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked clients.
func (s *RateLimiter) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// Middleware limits requests per client IP.
func (s *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !s.getLimiter(ip).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.ErrorResponse{
				Message: "Rate limit exceeded",
				Details: "Try again later.",
			})
			return
		}
		c.Next()
	}
}

// RateLimitMiddleware limits requests per client IP with a private limiter.
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	return NewRateLimiter(perMinute).Middleware()
}

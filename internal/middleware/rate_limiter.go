package middleware

import (
	"net/http"
	"sync"
	"time"

	"tiendaonline/internal/apierror"

	"github.com/gin-gonic/gin"
)

// rateEntry tracks request counts per IP within a sliding window.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// RateLimiter returns a general-purpose sliding-window rate limiter.
// Each instance keeps its own per-IP window map.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	var (
		rateMap   = make(map[string]*rateEntry)
		rateMapMu sync.Mutex
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		rateMapMu.Lock()
		entry, exists := rateMap[ip]
		if !exists {
			entry = &rateEntry{}
			rateMap[ip] = entry
		}
		rateMapMu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(window)
		}

		entry.count++
		if entry.count > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente mas tarde."))
			return
		}
		c.Next()
	}
}

// SolicitudRateLimiter guards the public order-request form: 10 submissions
// per minute per IP.
func SolicitudRateLimiter() gin.HandlerFunc {
	return RateLimiter(10, time.Minute)
}

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DvineConqueror/GroceryStorePOS/internal/apierror"
)

// ipLimiter is a fixed-window per-IP request counter. Each limiter owns its
// own map; a ticker goroutine evicts IPs whose window has lapsed so clients
// that never return do not accumulate.
type ipLimiter struct {
	mu      sync.Mutex
	seen    map[string]*ipWindow
	limit   int
	window  time.Duration
	message string
}

type ipWindow struct {
	count     int
	windowEnd time.Time
}

const purgeInterval = 5 * time.Minute

func newIPLimiter(limit int, window time.Duration, message string) *ipLimiter {
	l := &ipLimiter{
		seen:    make(map[string]*ipWindow),
		limit:   limit,
		window:  window,
		message: message,
	}
	go l.purgeLoop()
	return l
}

// allow counts one request and reports whether it fits the window, plus the
// instant the window resets.
func (l *ipLimiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.seen[ip]
	if !ok || now.After(w.windowEnd) {
		w = &ipWindow{windowEnd: now.Add(l.window)}
		l.seen[ip] = w
	}
	w.count++
	return w.count <= l.limit, w.windowEnd
}

func (l *ipLimiter) purgeLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for ip, w := range l.seen {
			if now.After(w.windowEnd) {
				delete(l.seen, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter throttles sign-in and sign-up attempts per IP per minute.
// The limit comes from configuration (LOGIN_RATE_LIMIT); both auth routes
// should share one instance so they draw from the same budget.
func LoginRateLimiter(limit int) gin.HandlerFunc {
	return newIPLimiter(limit, time.Minute, "Too many sign-in attempts. Try again in a minute.").handler()
}

// RateLimiter is the general per-IP limiter applied in front of the whole
// API surface.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newIPLimiter(limit, window, "Too many requests. Try again shortly.").handler()
}

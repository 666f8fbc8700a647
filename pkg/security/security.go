package security

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type snapshot struct {
	origins     map[string]bool
	maxRequests int
	window      time.Duration
	generation  uint64
}

// Settings holds the reloadable part of the security middleware: the CORS
// allowlist and the rate-limit parameters. Middleware reads an immutable
// snapshot per request, so Update can swap values while the server runs
// without locking the hot path.
type Settings struct {
	current    atomic.Value // *snapshot
	generation uint64
}

func NewSettings(origins []string, maxRequests int, window time.Duration) *Settings {
	s := &Settings{}
	s.Update(origins, maxRequests, window)
	return s
}

// Update publishes a new snapshot. Out-of-range limit values fall back to
// 1000 requests per minute.
func (s *Settings) Update(origins []string, maxRequests int, window time.Duration) {
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	if window <= 0 {
		window = time.Minute
	}

	originSet := make(map[string]bool, len(origins))
	for _, o := range origins {
		originSet[o] = true
	}

	s.current.Store(&snapshot{
		origins:     originSet,
		maxRequests: maxRequests,
		window:      window,
		generation:  atomic.AddUint64(&s.generation, 1),
	})
}

func (s *Settings) load() *snapshot {
	return s.current.Load().(*snapshot)
}

// CORS allows only origins on the current allowlist and supports
// credentials. The allowlist is re-read on every request, so a config
// reload takes effect immediately.
func CORS(settings *Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && settings.load().origins[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// Secure sets the usual browser hardening headers.
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}

		c.Next()
	}
}

// visitor pairs a limiter with its last activity so stale entries can be
// reaped, and remembers which settings generation built the limiter.
type visitor struct {
	limiter    *rate.Limiter
	generation uint64
	lastSeen   time.Time
}

// RateLimiter limits requests per client IP and reaps idle visitors. Each
// visitor's limiter is rebuilt the first time it is seen after a settings
// update, so reloaded limits apply without a restart.
func RateLimiter(settings *Settings) gin.HandlerFunc {
	store := make(map[string]*visitor)
	var mu sync.Mutex

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			expiry := settings.load().window * 3
			if expiry < time.Minute {
				expiry = time.Minute
			}
			mu.Lock()
			for ip, v := range store {
				if time.Since(v.lastSeen) > expiry {
					delete(store, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		key := c.ClientIP()
		snap := settings.load()

		mu.Lock()
		v, ok := store[key]
		if !ok || v.generation != snap.generation {
			v = &visitor{
				limiter:    rate.NewLimiter(rate.Every(snap.window/time.Duration(snap.maxRequests)), snap.maxRequests),
				generation: snap.generation,
			}
			store[key] = v
		}
		v.lastSeen = time.Now()
		mu.Unlock()

		if !v.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}

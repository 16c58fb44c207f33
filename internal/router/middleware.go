package router

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

// requestLogger 以 slog 记录每个请求的方法、路径、状态码与耗时。
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request", attrs...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", attrs...)
		default:
			logger.Info("request", attrs...)
		}
	}
}

// corsMiddleware applies the CORS policy and answers preflight requests itself.
func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	policy := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:         600,
	})

	return func(c *gin.Context) {
		policy.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// maxTrackedIPs caps how many client buckets an ipLimiter keeps.
const maxTrackedIPs = 10000

// ipLimiter hands out one token bucket per client IP. Buckets idle for longer
// than a full refill are dropped, since a fresh bucket behaves the same.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	every    rate.Limit
	burst    int
	idle     time.Duration
	max      int
	now      func() time.Time
}

type limiterEntry struct {
	limiter *rate.Limiter
	seen    time.Time
}

func newIPLimiter(every time.Duration, burst int) *ipLimiter {
	idle := every * time.Duration(max(burst, 1))
	if idle < time.Minute {
		idle = time.Minute
	}
	return &ipLimiter{
		limiters: make(map[string]*limiterEntry),
		every:    rate.Every(every),
		burst:    burst,
		idle:     idle,
		max:      maxTrackedIPs,
		now:      time.Now,
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if entry, ok := l.limiters[ip]; ok {
		entry.seen = now
		return entry.limiter
	}
	if len(l.limiters) >= l.max {
		l.evict(now)
	}
	entry := &limiterEntry{limiter: rate.NewLimiter(l.every, l.burst), seen: now}
	l.limiters[ip] = entry
	return entry.limiter
}

// evict drops idle buckets; if the map is still full it drops the least
// recently seen one. Callers hold l.mu.
func (l *ipLimiter) evict(now time.Time) {
	var oldestIP string
	var oldest time.Time
	for ip, entry := range l.limiters {
		if now.Sub(entry.seen) > l.idle {
			delete(l.limiters, ip)
			continue
		}
		if oldestIP == "" || entry.seen.Before(oldest) {
			oldestIP, oldest = ip, entry.seen
		}
	}
	if len(l.limiters) >= l.max && oldestIP != "" {
		delete(l.limiters, oldestIP)
	}
}

// rateLimit 限制登录尝试频率，超出时返回 429。
func rateLimit(l *ipLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			slog.Warn("rate limited", "ip", c.ClientIP(), "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, try again later"})
			return
		}
		c.Next()
	}
}

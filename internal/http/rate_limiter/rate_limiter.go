package rate_limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"
)

const idleVisitorTTL = 5 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per client IP.
type Limiter struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*clientLimiter
	now      func() time.Time
}

func New(rps float64, burst int) *Limiter {
	return &Limiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		visitors: make(map[string]*clientLimiter),
		now:      time.Now,
	}
}

func (l *Limiter) GetVisitor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(l.rps, l.burst)
		l.visitors[ip] = &clientLimiter{limiter, l.now()}
		return limiter
	}

	v.lastSeen = l.now()
	return v.limiter
}

// Sweep forgets visitors idle for longer than the TTL and returns how many
// were removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for ip, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > idleVisitorTTL {
			delete(l.visitors, ip)
			removed++
		}
	}
	return removed
}

// StartCleanup schedules Sweep every minute. Stop the returned cron on
// shutdown.
func (l *Limiter) StartCleanup() (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc("@every 1m", func() { l.Sweep() }); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

// Middleware rejects clients that exceed their bucket with 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.GetVisitor(clientIP(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

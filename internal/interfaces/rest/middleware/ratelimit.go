package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/api"
	"github.com/DanielPopoola/devmarket-ledger/internal/interfaces/rest"
	"golang.org/x/time/rate"
)

type ipLimiter struct {
	limiter *rate.Limiter
	mu      sync.Mutex
	last    time.Time
}

func (l *ipLimiter) touch(now time.Time) {
	l.mu.Lock()
	l.last = now
	l.mu.Unlock()
}

func (l *ipLimiter) idleSince(now time.Time) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return now.Sub(l.last)
}

// RateLimiter holds one token bucket per client IP.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	limiters sync.Map // map[string]*ipLimiter
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{rps: rate.Limit(rps), burst: burst}
}

func (rl *RateLimiter) limiterFor(ip string) *ipLimiter {
	if v, ok := rl.limiters.Load(ip); ok {
		return v.(*ipLimiter)
	}
	fresh := &ipLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst), last: time.Now()}
	v, _ := rl.limiters.LoadOrStore(ip, fresh)
	return v.(*ipLimiter)
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lim := rl.limiterFor(remoteIP(r))
		lim.touch(time.Now())

		if !lim.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			rest.WriteJSON(w, http.StatusTooManyRequests, api.ErrorResponse{
				Error: "Too many requests",
				Code:  "RATE_LIMITED",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Sweep drops limiters idle for longer than maxIdle.
func (rl *RateLimiter) Sweep(maxIdle time.Duration) {
	now := time.Now()
	rl.limiters.Range(func(key, val any) bool {
		if val.(*ipLimiter).idleSince(now) > maxIdle {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// RunSweeper sweeps every interval until ctx is done.
func (rl *RateLimiter) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Sweep(maxIdle)
		}
	}
}

// remoteIP keys on the connection address. Forwarded headers count only after
// chi's RealIP has rewritten RemoteAddr from them.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

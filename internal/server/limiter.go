package server

import (
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ClientLimiter keeps one token bucket per client address.
//
// Buckets idle long enough to have refilled are forgotten.
type ClientLimiter struct {
	limit rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientBucket
	lastPrune time.Time
}

type clientBucket struct {
	limiter *rate.Limiter
	seen    time.Time
}

func NewClientLimiter(limit rate.Limit, burst int) *ClientLimiter {
	if burst <= 0 {
		burst = 1
	}

	idle := time.Minute
	if limit > 0 && limit != rate.Inf {
		refill := time.Duration(math.Ceil(float64(burst) / float64(limit) * float64(time.Second)))
		idle = max(idle, refill)
	}

	return &ClientLimiter{
		limit:   limit,
		burst:   burst,
		idle:    idle,
		now:     time.Now,
		clients: make(map[string]*clientBucket),
	}
}

// Allow reports whether the client identified by key may make a request now.
func (l *ClientLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPrune) >= l.idle {
		l.prune(now)
	}

	bucket, ok := l.clients[key]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = bucket
	}
	bucket.seen = now
	return bucket.limiter.AllowN(now, 1)
}

// Clients returns how many client buckets are tracked.
func (l *ClientLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *ClientLimiter) prune(now time.Time) {
	for key, bucket := range l.clients {
		if now.Sub(bucket.seen) >= l.idle {
			delete(l.clients, key)
		}
	}
	l.lastPrune = now
}

// ClientAddr is the host part of the request's remote address.
func ClientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

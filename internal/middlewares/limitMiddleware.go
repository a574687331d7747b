package middlewares

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	requestsPerSecond = 3
	burstSize         = 5
	visitorTTL        = 3 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitors keys authenticated traffic by user id and everything else by
// client IP.
var (
	visitors   = make(map[string]*visitor)
	visitorsMu sync.Mutex
)

func getLimiter(key string) *rate.Limiter {
	visitorsMu.Lock()
	defer visitorsMu.Unlock()

	v, ok := visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(requestsPerSecond, burstSize)}
		visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// CleanupVisitors drops limiter state for clients idle past the TTL. Run it
// in its own goroutine.
func CleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		visitorsMu.Lock()
		for key, v := range visitors {
			if time.Since(v.lastSeen) > visitorTTL {
				delete(visitors, key)
			}
		}
		visitorsMu.Unlock()
	}
}

func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var key string
		if userID, ok := r.Context().Value("userID").(string); ok {
			key = "user:" + userID
		} else {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			key = "ip:" + ip
		}

		if !getLimiter(key).Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package restapi

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"techtrends.sheridan.dev/internal/metrics"
	"techtrends.sheridan.dev/internal/models"
)

// RateLimitMiddleware caps how often the warehouse query can be triggered.
// There are no API keys, so one token bucket is shared by every client.
type RateLimitMiddleware struct {
	limiter *rate.Limiter
	perSec  int
}

// NewRateLimitMiddleware allows ratePerSecond requests per second with a
// burst of the same size. Zero or negative disables limiting.
func NewRateLimitMiddleware(ratePerSecond int) func(http.Handler) http.Handler {
	if ratePerSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	rl := &RateLimitMiddleware{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), ratePerSecond),
		perSec:  ratePerSecond,
	}
	return rl.rateLimitHandler
}

func (rl *RateLimitMiddleware) rateLimitHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter.Allow() {
			rl.sendRateLimitExceeded(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sendRateLimitExceeded sends a 429 Too Many Requests response
func (rl *RateLimitMiddleware) sendRateLimitExceeded(w http.ResponseWriter) {
	metrics.RecordRateLimited()

	retryAfter := time.Duration(float64(time.Second) / float64(rl.perSec))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.perSec))
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.WriteHeader(http.StatusTooManyRequests)

	_ = json.NewEncoder(w).Encode(models.NewErrorResponse(http.StatusTooManyRequests,
		"Rate limit exceeded. Please try again later."))
}

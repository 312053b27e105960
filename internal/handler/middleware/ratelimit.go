package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"vehicle-rental/internal/handler/httperr"
	"vehicle-rental/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

var ErrRateLimited = errs.New("rate limit exceeded")

// RateLimiters builds per-route limiters. Counters live in Redis when a client
// is configured so every replica shares them; otherwise they are per process.
type RateLimiters struct {
	rdb *redis.Client
}

func NewRateLimiters(rdb *redis.Client) *RateLimiters {
	return &RateLimiters{rdb: rdb}
}

// For returns a middleware limiting each authenticated user on routeID.
// rateStr uses the limiter format, e.g. "10-M".
func (r *RateLimiters) For(routeID, rateStr string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		return nil, errs.Wrapf(err, "invalid rate %q for route %s", rateStr, routeID)
	}

	opts := limiter.StoreOptions{
		Prefix:          "rate_limiter:" + routeID,
		MaxRetry:        3,
		CleanUpInterval: rate.Period,
	}
	var store limiter.Store
	if r.rdb != nil {
		store, err = redisstore.NewStoreWithOptions(r.rdb, opts)
		if err != nil {
			return nil, errs.Wrapf(err, "failed to create redis store for route %s", routeID)
		}
	} else {
		store = memory.NewStoreWithOptions(opts)
	}

	return ginmiddleware.NewMiddleware(limiter.New(store, rate),
		ginmiddleware.WithKeyGetter(rateLimitKey),
		ginmiddleware.WithLimitReachedHandler(func(c *gin.Context) {
			setRetryAfter(c)
			httperr.AbortWithError(c, http.StatusTooManyRequests, ErrRateLimited, "Too many requests", nil)
		}),
		ginmiddleware.WithErrorHandler(func(c *gin.Context, err error) {
			// Fail open: a broken limiter store must not block bookings.
			slog.Warn("rate limiter store failed", "route", routeID, "error", err)
			c.Next()
		}),
	), nil
}

func rateLimitKey(c *gin.Context) string {
	if id, ok := GetUserID(c); ok {
		return id.String()
	}
	return "ip:" + c.ClientIP()
}

// setRetryAfter derives Retry-After from the reset timestamp the limiter has
// already written.
func setRetryAfter(c *gin.Context) {
	reset, err := strconv.ParseInt(c.Writer.Header().Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return
	}
	wait := time.Until(time.Unix(reset, 0))
	secs := int64(wait.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	c.Header("Retry-After", strconv.FormatInt(secs, 10))
}

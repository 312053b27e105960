package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"vehicle-rental/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Browsers hide response headers unless they are exposed. Clients need these
// to back off from the booking limiter and to quote a request id to support.
var alwaysExposed = []string{
	RequestIDHeader,
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"X-RateLimit-Reset",
	"Retry-After",
}

var alwaysAllowed = []string{RequestIDHeader}

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     mergeHeaders(cfg.AllowHeaders, alwaysAllowed),
		ExposeHeaders:    mergeHeaders(cfg.ExposeHeaders, alwaysExposed),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized",
		"allow_origins", corsCfg.AllowOrigins,
		"expose_headers", corsCfg.ExposeHeaders,
	)
	return cors.New(corsCfg)
}

func mergeHeaders(configured, required []string) []string {
	out := make([]string, 0, len(configured)+len(required))
	seen := make(map[string]bool, cap(out))
	for _, h := range slices.Concat(configured, required) {
		h = strings.TrimSpace(h)
		key := strings.ToLower(h)
		if h == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	return out
}

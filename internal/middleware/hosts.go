package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tasktrackr/tasktrackr/internal/types"
)

// AllowedHosts rejects requests whose Host header matches none of the
// patterns. A pattern is an exact host, "*", or ".example.com" for the
// domain and all of its subdomains.
func AllowedHosts(patterns []string, logger zerolog.Logger) gin.HandlerFunc {
	normalized := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			normalized = append(normalized, p)
		}
	}

	return func(ctx *gin.Context) {
		host := hostname(ctx.Request.Host)
		if HostAllowed(host, normalized) {
			ctx.Next()
			return
		}

		logger.Warn().Str("host", ctx.Request.Host).Msg("rejected host header")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid host header"})
	}
}

func HostAllowed(host string, patterns []string) bool {
	if host == "" {
		return false
	}
	for _, p := range patterns {
		switch {
		case p == "*":
			return true
		case strings.HasPrefix(p, "."):
			if host == p[1:] || strings.HasSuffix(host, p) {
				return true
			}
		case host == p:
			return true
		}
	}
	return false
}

// hostname strips the port and a trailing dot from a Host header value.
func hostname(hostport string) string {
	host := strings.ToLower(hostport)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimPrefix(strings.TrimSuffix(host, "]"), "[")
	return strings.TrimSuffix(host, ".")
}

package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tasktrackr/tasktrackr/internal/types"
)

// RequestLogger tags each request with an id, echoed in X-Request-ID, and
// logs one line per request once it completes.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		reqID := strings.TrimSpace(ctx.GetHeader(types.RequestIDHeader))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx.Set(types.ContextRequestIDKey, reqID)
		ctx.Header(types.RequestIDHeader, reqID)

		ctx.Next()

		status := ctx.Writer.Status()
		event := logger.Info()
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		}

		event.
			Str("request_id", reqID).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", ctx.ClientIP()).
			Msg("handled request")
	}
}

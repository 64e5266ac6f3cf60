package middleware

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tasktrackr/tasktrackr/internal/types"
)

// Recovery turns a panicking handler into a 500 and logs the panic through
// zerolog instead of gin's writer.
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(ctx *gin.Context, recovered any) {
		logger.Error().
			Interface("panic", recovered).
			Str("request_id", ctx.GetString(types.ContextRequestIDKey)).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Msg("recovered from panic")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Internal server error"})
	})
}

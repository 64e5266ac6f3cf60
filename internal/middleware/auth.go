package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
	"github.com/tasktrackr/tasktrackr/internal/services"
	"github.com/tasktrackr/tasktrackr/internal/types"
)

type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

const (
	msgNoCredentials = "Authentication credentials were not provided."
	msgBadHeader     = "Authorization header must contain two space-delimited values"

	// WWWAuthenticate is sent with every 401 answer.
	WWWAuthenticate = `Bearer realm="api"`
)

func AuthMiddleware(authService services.AuthService, logger zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		parts := strings.Fields(ctx.GetHeader("Authorization"))

		if len(parts) == 0 || !strings.EqualFold(parts[0], "Bearer") {
			AbortUnauthorized(ctx, msgNoCredentials)
			return
		}

		if len(parts) != 2 {
			AbortUnauthorized(ctx, msgBadHeader)
			return
		}

		user, err := authService.Authenticate(ctx.Request.Context(), parts[1])

		if errors.Is(err, apperr.ErrAuthentication) {
			AbortUnauthorized(ctx, apperr.Detail(err))
			return
		}

		if err != nil {
			logger.Error().Err(err).Msg("failed to authenticate request")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Internal server error"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
		ctx.Next()
	}
}

func AbortUnauthorized(ctx *gin.Context, detail string) {
	ctx.Header("WWW-Authenticate", WWWAuthenticate)
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: detail})
}

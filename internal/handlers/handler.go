package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
	"github.com/tasktrackr/tasktrackr/internal/middleware"
	"github.com/tasktrackr/tasktrackr/internal/services"
	"github.com/tasktrackr/tasktrackr/internal/types"
)

type Handler struct {
	logger   zerolog.Logger
	auth     services.AuthService
	projects services.ProjectService
	tasks    services.TaskService
	ping     func(ctx context.Context) error
}

func NewHandler(
	logger zerolog.Logger,
	auth services.AuthService,
	projects services.ProjectService,
	tasks services.TaskService,
	ping func(ctx context.Context) error,
) *Handler {
	return &Handler{
		logger:   logger,
		auth:     auth,
		projects: projects,
		tasks:    tasks,
		ping:     ping,
	}
}

// bindJSON decodes the request body. An empty body reads as an empty object,
// so missing fields are reported by validation rather than as a parse error.
func (h *Handler) bindJSON(ctx *gin.Context, dst any) bool {
	err := ctx.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			h.respondError(ctx, apperr.Field(apperr.NonFieldErrors, "Invalid data. Expected a dictionary, but got "+typeErr.Value+"."))
			return false
		}
		h.respondError(ctx, apperr.Field(typeErr.Field, "Incorrect type. Expected "+typeErr.Type.String()+" value, received "+typeErr.Value+"."))
		return false
	}

	h.respondError(ctx, apperr.Field(apperr.NonFieldErrors, "JSON parse error - "+err.Error()))
	return false
}

// respondError maps the apperr taxonomy to a status code and body. Causes of
// 500s are logged and never returned.
func (h *Handler) respondError(ctx *gin.Context, err error) {
	var ve *apperr.ValidationError

	switch {
	case errors.As(err, &ve):
		ctx.AbortWithStatusJSON(http.StatusBadRequest, types.ErrorResponse{Error: "Validation failed", Fields: ve.Fields})
	case errors.Is(err, apperr.ErrAuthentication):
		middleware.AbortUnauthorized(ctx, apperr.Detail(err))
	case errors.Is(err, apperr.ErrNotFound):
		ctx.AbortWithStatusJSON(http.StatusNotFound, types.ErrorResponse{Error: "Not found"})
	default:
		h.logger.Error().
			Err(err).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Msg("request failed")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Internal server error"})
	}
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tasktrackr/tasktrackr/internal/types"
)

func (h *Handler) HealthCheck(c *gin.Context) {
	response := types.HealthResponse{
		Status:    "ok",
		Database:  "ok",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(pingCtx); err != nil {
		h.logger.Error().Err(err).Msg("database ping failed")
		response.Status = "degraded"
		response.Database = "unavailable"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

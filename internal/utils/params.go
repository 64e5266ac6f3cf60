package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

var (
	ErrMissingID = errors.New("id not found")
	ErrInvalidID = errors.New("invalid id")
)

// GetID parses a positive numeric path parameter such as "project_id".
func GetID(ctx *gin.Context, param string) (uint, error) {
	idStr := ctx.Param(param)

	if idStr == "" {
		return 0, ErrMissingID
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}

	return uint(id), nil
}

func GetProjectID(ctx *gin.Context) (uint, error) {
	return GetID(ctx, "project_id")
}

func GetTaskID(ctx *gin.Context) (uint, error) {
	return GetID(ctx, "task_id")
}

package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tasktrackr/tasktrackr/internal/middleware"
	"github.com/tasktrackr/tasktrackr/internal/types"
)

var (
	ErrNotAuthenticated = errors.New("user not authenticated")
	ErrInvalidUserType  = errors.New("invalid user type in context")
)

// GetCurrentUser returns the user stored by middleware.AuthMiddleware.
func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, ErrNotAuthenticated
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, ErrInvalidUserType
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

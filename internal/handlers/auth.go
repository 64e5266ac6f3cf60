package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasktrackr/tasktrackr/internal/types"
	"github.com/tasktrackr/tasktrackr/internal/utils"
	"github.com/tasktrackr/tasktrackr/internal/validation"
)

func (h *Handler) Register(ctx *gin.Context) {
	var body validation.RegisterInput

	if !h.bindJSON(ctx, &body) {
		return
	}

	user, err := h.auth.Register(ctx.Request.Context(), body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewUserResponse(user))
}

func (h *Handler) ObtainToken(ctx *gin.Context) {
	var body validation.LoginInput

	if !h.bindJSON(ctx, &body) {
		return
	}

	pair, err := h.auth.Login(ctx.Request.Context(), body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.TokenPairResponse{Access: pair.Access, Refresh: pair.Refresh})
}

func (h *Handler) RefreshToken(ctx *gin.Context) {
	var body validation.RefreshInput

	if !h.bindJSON(ctx, &body) {
		return
	}

	access, err := h.auth.Refresh(ctx.Request.Context(), body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.AccessTokenResponse{Access: access})
}

func (h *Handler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.UserResponse{
		ID:       currentUser.ID,
		Username: currentUser.Username,
		Email:    currentUser.Email,
	})
}

// DeleteMe removes the caller's account with all of its projects and tasks.
func (h *Handler) DeleteMe(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if err := h.auth.DeleteAccount(ctx.Request.Context(), userID); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

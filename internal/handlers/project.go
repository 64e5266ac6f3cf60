package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
	"github.com/tasktrackr/tasktrackr/internal/types"
	"github.com/tasktrackr/tasktrackr/internal/utils"
	"github.com/tasktrackr/tasktrackr/internal/validation"
)

func (h *Handler) ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	projects, err := h.projects.List(ctx.Request.Context(), userID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	response := make([]types.ProjectResponse, 0, len(projects))

	for i := range projects {
		response = append(response, types.NewProjectResponse(&projects[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	var body validation.ProjectInput

	if !h.bindJSON(ctx, &body) {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	project, err := h.projects.Create(ctx.Request.Context(), userID, body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewProjectResponse(project))
}

func (h *Handler) GetProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		h.respondError(ctx, apperr.ErrNotFound)
		return
	}

	project, err := h.projects.Get(ctx.Request.Context(), userID, projectID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewProjectResponse(project))
}

func (h *Handler) ReplaceProject(ctx *gin.Context) {
	h.updateProject(ctx, false)
}

func (h *Handler) UpdateProject(ctx *gin.Context) {
	h.updateProject(ctx, true)
}

func (h *Handler) updateProject(ctx *gin.Context, partial bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		h.respondError(ctx, apperr.ErrNotFound)
		return
	}

	var body validation.ProjectInput

	if !h.bindJSON(ctx, &body) {
		return
	}

	project, err := h.projects.Update(ctx.Request.Context(), userID, projectID, body, partial)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewProjectResponse(project))
}

func (h *Handler) DeleteProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		h.respondError(ctx, apperr.ErrNotFound)
		return
	}

	if err := h.projects.Delete(ctx.Request.Context(), userID, projectID); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
	"github.com/tasktrackr/tasktrackr/internal/types"
	"github.com/tasktrackr/tasktrackr/internal/utils"
	"github.com/tasktrackr/tasktrackr/internal/validation"
)

func (h *Handler) ListTasks(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	tasks, err := h.tasks.List(ctx.Request.Context(), userID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	response := make([]types.TaskResponse, 0, len(tasks))

	for i := range tasks {
		response = append(response, types.NewTaskResponse(&tasks[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) CreateTask(ctx *gin.Context) {
	var body validation.TaskInput

	if !h.bindJSON(ctx, &body) {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	task, err := h.tasks.Create(ctx.Request.Context(), userID, body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewTaskResponse(task))
}

func (h *Handler) GetTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		h.respondError(ctx, apperr.ErrNotFound)
		return
	}

	task, err := h.tasks.Get(ctx.Request.Context(), userID, taskID)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(task))
}

func (h *Handler) ReplaceTask(ctx *gin.Context) {
	h.updateTask(ctx, false)
}

// UpdateTask applies only the fields present in the body.
func (h *Handler) UpdateTask(ctx *gin.Context) {
	h.updateTask(ctx, true)
}

func (h *Handler) updateTask(ctx *gin.Context, partial bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		h.respondError(ctx, apperr.ErrNotFound)
		return
	}

	var body validation.TaskInput

	if !h.bindJSON(ctx, &body) {
		return
	}

	task, err := h.tasks.Update(ctx.Request.Context(), userID, taskID, body, partial)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(task))
}

func (h *Handler) DeleteTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		h.respondError(ctx, apperr.ErrNotFound)
		return
	}

	if err := h.tasks.Delete(ctx.Request.Context(), userID, taskID); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
	"github.com/tasktrackr/tasktrackr/internal/models"
	"github.com/tasktrackr/tasktrackr/internal/store"
	"github.com/tasktrackr/tasktrackr/internal/validation"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	store  *store.Store
}

func NewTaskService(logger zerolog.Logger, store *store.Store) TaskService {
	return &taskServiceImpl{
		logger: logger,
		store:  store,
	}
}

func (s *taskServiceImpl) List(ctx context.Context, userID uint) ([]models.Task, error) {
	tasks, err := s.store.Tasks.List(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to list tasks")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Uint("user_id", userID).
		Msg("selected tasks")
	return tasks, nil
}

func (s *taskServiceImpl) Create(ctx context.Context, userID uint, in validation.TaskInput) (*models.Task, error) {
	changes, err := validation.ValidateTask(in, false)
	if err != nil {
		return nil, err
	}
	if err := s.checkProject(ctx, userID, changes); err != nil {
		return nil, err
	}

	task := &models.Task{Status: models.TaskStatusPending}
	applyTask(task, changes)

	if err := s.store.Tasks.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Uint("project_id", task.ProjectID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().
		Uint("task_id", task.ID).
		Uint("project_id", task.ProjectID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) Get(ctx context.Context, userID, id uint) (*models.Task, error) {
	task, err := s.store.Tasks.Get(ctx, userID, id)
	if err != nil {
		s.logStoreError(err, id, "failed to get task")
		return nil, err
	}
	s.logger.Debug().Uint("task_id", id).Msg("selected task")
	return task, nil
}

func (s *taskServiceImpl) Update(ctx context.Context, userID, id uint, in validation.TaskInput, partial bool) (*models.Task, error) {
	task, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	changes, err := validation.ValidateTask(in, partial)
	if err != nil {
		return nil, err
	}
	if err := s.checkProject(ctx, userID, changes); err != nil {
		return nil, err
	}
	applyTask(task, changes)

	if err := s.store.Tasks.Update(ctx, task, changes.Columns()); err != nil {
		s.logger.Error().Err(err).Uint("task_id", id).Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Uint("task_id", id).
		Strs("columns", changes.Columns()).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, userID, id uint) error {
	if err := s.store.Tasks.Delete(ctx, userID, id); err != nil {
		s.logStoreError(err, id, "failed to delete task")
		return err
	}

	s.logger.Info().
		Uint("task_id", id).
		Uint("user_id", userID).
		Msg("deleted task")
	return nil
}

// checkProject rejects project references outside the user's scope the same
// way as references to projects that do not exist.
func (s *taskServiceImpl) checkProject(ctx context.Context, userID uint, changes validation.TaskChanges) error {
	if changes.ProjectID == nil {
		return nil
	}

	ok, err := s.store.Projects.Exists(ctx, userID, *changes.ProjectID)
	if err != nil {
		s.logger.Error().Err(err).Uint("project_id", *changes.ProjectID).Msg("failed to check project")
		return err
	}
	if !ok {
		return apperr.Field("project", validation.InvalidProjectMessage(changes.ProjectRef))
	}
	return nil
}

func (s *taskServiceImpl) logStoreError(err error, id uint, msg string) {
	if errors.Is(err, apperr.ErrNotFound) {
		s.logger.Debug().Uint("task_id", id).Msg("task not found")
		return
	}
	s.logger.Error().Err(err).Uint("task_id", id).Msg(msg)
}

func applyTask(task *models.Task, changes validation.TaskChanges) {
	if changes.ProjectID != nil {
		task.ProjectID = *changes.ProjectID
	}
	if changes.Title != nil {
		task.Title = *changes.Title
	}
	if changes.Description != nil {
		task.Description = *changes.Description
	}
	if changes.Status != nil {
		task.Status = *changes.Status
	}
	if changes.DueDateSet {
		task.DueDate = nil
		if changes.DueDate != nil {
			due := datatypes.Date(*changes.DueDate)
			task.DueDate = &due
		}
	}
}

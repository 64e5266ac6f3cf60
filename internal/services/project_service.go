package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
	"github.com/tasktrackr/tasktrackr/internal/models"
	"github.com/tasktrackr/tasktrackr/internal/store"
	"github.com/tasktrackr/tasktrackr/internal/validation"
)

type projectServiceImpl struct {
	logger zerolog.Logger
	store  *store.Store
}

func NewProjectService(logger zerolog.Logger, store *store.Store) ProjectService {
	return &projectServiceImpl{
		logger: logger,
		store:  store,
	}
}

func (s *projectServiceImpl) List(ctx context.Context, userID uint) ([]models.Project, error) {
	projects, err := s.store.Projects.List(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to list projects")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(projects)).
		Uint("user_id", userID).
		Msg("selected projects")
	return projects, nil
}

func (s *projectServiceImpl) Create(ctx context.Context, userID uint, in validation.ProjectInput) (*models.Project, error) {
	changes, err := validation.ValidateProject(in, false)
	if err != nil {
		return nil, err
	}

	project := &models.Project{OwnerID: userID, Tasks: []models.Task{}}
	applyProject(project, changes)

	if err := s.store.Projects.Create(ctx, project); err != nil {
		s.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().
		Uint("project_id", project.ID).
		Uint("user_id", userID).
		Msg("created project")
	return project, nil
}

func (s *projectServiceImpl) Get(ctx context.Context, userID, id uint) (*models.Project, error) {
	project, err := s.store.Projects.Get(ctx, userID, id)
	if err != nil {
		s.logStoreError(err, id, "failed to get project")
		return nil, err
	}
	s.logger.Debug().Uint("project_id", id).Msg("selected project")
	return project, nil
}

func (s *projectServiceImpl) Update(ctx context.Context, userID, id uint, in validation.ProjectInput, partial bool) (*models.Project, error) {
	project, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	changes, err := validation.ValidateProject(in, partial)
	if err != nil {
		return nil, err
	}
	applyProject(project, changes)

	if err := s.store.Projects.Update(ctx, project, changes.Columns()); err != nil {
		s.logger.Error().Err(err).Uint("project_id", id).Msg("failed to update project")
		return nil, err
	}

	s.logger.Info().
		Uint("project_id", id).
		Strs("columns", changes.Columns()).
		Msg("updated project")
	return project, nil
}

func (s *projectServiceImpl) Delete(ctx context.Context, userID, id uint) error {
	if err := s.store.Projects.Delete(ctx, userID, id); err != nil {
		s.logStoreError(err, id, "failed to delete project")
		return err
	}

	s.logger.Info().
		Uint("project_id", id).
		Uint("user_id", userID).
		Msg("deleted project")
	return nil
}

func (s *projectServiceImpl) logStoreError(err error, id uint, msg string) {
	if errors.Is(err, apperr.ErrNotFound) {
		s.logger.Debug().Uint("project_id", id).Msg("project not found")
		return
	}
	s.logger.Error().Err(err).Uint("project_id", id).Msg(msg)
}

func applyProject(project *models.Project, changes validation.ProjectChanges) {
	if changes.Name != nil {
		project.Name = *changes.Name
	}
	if changes.Description != nil {
		project.Description = *changes.Description
	}
}

package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
	"github.com/tasktrackr/tasktrackr/internal/models"
)

type ProjectStore struct {
	db *gorm.DB
}

func preloadTasks(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("tasks.id")
	})
}

// List returns the user's projects with their tasks, oldest first.
func (s *ProjectStore) List(ctx context.Context, ownerID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Scopes(OwnedBy(ownerID, &models.Project{}), preloadTasks).
		Order("projects.id").
		Find(&projects).Error
	if err != nil {
		return nil, translate("list projects", err)
	}
	return projects, nil
}

func (s *ProjectStore) Get(ctx context.Context, ownerID, id uint) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).
		Scopes(OwnedBy(ownerID, &models.Project{}), preloadTasks).
		First(&project, id).Error
	if err != nil {
		return nil, translate("get project", err)
	}
	return &project, nil
}

func (s *ProjectStore) Create(ctx context.Context, project *models.Project) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
	return translate("create project", err)
}

// Update writes the given columns of an already scoped project. The owner
// column is never writable.
func (s *ProjectStore) Update(ctx context.Context, project *models.Project, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Model(project).
		Select(columns).
		Omit("owner_id", clause.Associations).
		Updates(project).Error
	return translate("update project", err)
}

func (s *ProjectStore) Delete(ctx context.Context, ownerID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		err := tx.Scopes(OwnedBy(ownerID, &models.Project{})).Select("id").First(&project, id).Error
		if err != nil {
			return translate("get project", err)
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
			return translate("delete project tasks", err)
		}
		if err := tx.Delete(&models.Project{}, project.ID).Error; err != nil {
			return translate("delete project", err)
		}
		return nil
	})
}

// Exists reports whether the project is inside the user's ownership scope.
func (s *ProjectStore) Exists(ctx context.Context, ownerID, id uint) (bool, error) {
	var project models.Project
	err := s.db.WithContext(ctx).
		Scopes(OwnedBy(ownerID, &models.Project{})).
		Select("id").
		First(&project, id).Error
	if err == nil {
		return true, nil
	}
	if err = translate("get project", err); errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	return false, err
}

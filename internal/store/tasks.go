package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
	"github.com/tasktrackr/tasktrackr/internal/models"
)

type TaskStore struct {
	db *gorm.DB
}

func (s *TaskStore) List(ctx context.Context, ownerID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Scopes(OwnedBy(ownerID, &models.Task{})).
		Order("tasks.id").
		Find(&tasks).Error
	if err != nil {
		return nil, translate("list tasks", err)
	}
	return tasks, nil
}

func (s *TaskStore) Get(ctx context.Context, ownerID, id uint) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).
		Scopes(OwnedBy(ownerID, &models.Task{})).
		First(&task, id).Error
	if err != nil {
		return nil, translate("get task", err)
	}
	return &task, nil
}

func (s *TaskStore) Create(ctx context.Context, task *models.Task) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
	return translate("create task", err)
}

// Update writes only the named columns, so a status change leaves the other
// fields as they were.
func (s *TaskStore) Update(ctx context.Context, task *models.Task, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Model(task).
		Select(columns).
		Omit(clause.Associations).
		Updates(task).Error
	return translate("update task", err)
}

func (s *TaskStore) Delete(ctx context.Context, ownerID, id uint) error {
	res := s.db.WithContext(ctx).
		Scopes(OwnedBy(ownerID, &models.Task{})).
		Delete(&models.Task{}, id)
	if res.Error != nil {
		return translate("delete task", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

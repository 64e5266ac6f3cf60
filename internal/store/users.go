package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
	"github.com/tasktrackr/tasktrackr/internal/models"
)

type UserStore struct {
	db *gorm.DB
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
	return translate("create user", err)
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate("find user", err)
	}
	return &user, nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate("find user", err)
	}
	return &user, nil
}

func (s *UserStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "username = ?", username)
}

// EmailTaken compares case-insensitively; emails are stored lower-cased.
func (s *UserStore) EmailTaken(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "LOWER(email) = LOWER(?)", email)
}

func (s *UserStore) exists(ctx context.Context, query string, arg string) (bool, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("id").Where(query, arg).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, translate("check user", err)
	}
	return true, nil
}

// Delete removes the user together with every owned project and task.
// Children are deleted explicitly so the cascade also holds on SQLite
// connections opened without the foreign_keys pragma.
func (s *UserStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Project{}).Select("id").Where("owner_id = ?", id)
		if err := tx.Where("project_id IN (?)", owned).Delete(&models.Task{}).Error; err != nil {
			return translate("delete user tasks", err)
		}
		if err := tx.Where("owner_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return translate("delete user projects", err)
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return translate("delete user", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}
		return nil
	})
}

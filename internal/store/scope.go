package store

import (
	"gorm.io/gorm"

	"github.com/tasktrackr/tasktrackr/internal/models"
)

// Scope narrows a query to the records a user may see.
type Scope func(*gorm.DB) *gorm.DB

// OwnedBy returns the ownership scope for the given resource model.
// Projects belong to their owner directly; tasks through their project.
func OwnedBy(userID uint, model interface{}) Scope {
	switch model.(type) {
	case *models.Project, models.Project:
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("projects.owner_id = ?", userID)
		}
	case *models.Task, models.Task:
		return func(tx *gorm.DB) *gorm.DB {
			owned := tx.Session(&gorm.Session{NewDB: true}).
				Model(&models.Project{}).
				Select("id").
				Where("owner_id = ?", userID)
			return tx.Where("tasks.project_id IN (?)", owned)
		}
	default:
		// Unknown resources are never visible.
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("1 = 0")
		}
	}
}

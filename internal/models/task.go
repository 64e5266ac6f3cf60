package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// TaskStatuses lists the accepted status values in display order.
var TaskStatuses = []string{TaskStatusPending, TaskStatusInProgress, TaskStatusDone}

type Task struct {
	ID          uint   `gorm:"primaryKey"`
	ProjectID   uint   `gorm:"not null;index"`
	Title       string `gorm:"size:120;not null"`
	Description string `gorm:"type:text;not null"`
	Status      string `gorm:"size:20;not null;default:pending"`
	DueDate     *datatypes.Date
	CreatedAt   time.Time

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

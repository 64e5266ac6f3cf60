package models

import "time"

type Project struct {
	ID          uint   `gorm:"primaryKey"`
	OwnerID     uint   `gorm:"not null;index"`
	Name        string `gorm:"size:120;not null"`
	Description string `gorm:"type:text;not null"`
	CreatedAt   time.Time

	// Relationships
	Owner User   `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Tasks []Task `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

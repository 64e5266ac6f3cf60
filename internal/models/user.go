package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:150;uniqueIndex;not null"`
	Email        string    `gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null" json:"-"`
	DateJoined   time.Time `gorm:"autoCreateTime"`

	// Relationships
	OwnedProjects []Project `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account-level record with usage counters. Counters are advisory
// and not independently versioned.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	Name           string    `gorm:"not null"`
	HashedPassword string    `gorm:"not null"`
	BoardsCreated  int64     `gorm:"not null;default:0"`
	IconsGenerated int64     `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is the base for relational entities (users, roles, blacklist).
// Reports are not relational; they live in the report slot, see db package.
type Model struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

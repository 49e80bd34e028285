package models

import "github.com/google/uuid"

// Role classifies what an account may do. Authorization decisions go
// through the authz package, never through identity string comparisons.
type Role struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `json:"name"`
}

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

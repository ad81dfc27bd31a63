package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminStatus represents the state of a staff account.
type AdminStatus string

const (
	AdminStatusActive    AdminStatus = "ACTIVE"
	AdminStatusSuspended AdminStatus = "SUSPENDED"
)

// Admin is a staff member allowed to operate the administrative API.
type Admin struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Role         string      `json:"role"`
	PasswordHash string      `json:"-"` // Never expose
	Status       AdminStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// IsActive returns true if the staff account may log in.
func (a *Admin) IsActive() bool {
	return a.Status == AdminStatusActive
}

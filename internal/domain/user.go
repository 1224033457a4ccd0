package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the fixed account role assigned at signup
type Role string

const (
	RoleOwner Role = "owner"
	RoleBuyer Role = "buyer"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleBuyer:
		return true
	}
	return false
}

// User represents an account with a fixed role
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole mirrors the user_role ENUM in the database.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RolePlayer    UserRole = "player"
	RoleSpectator UserRole = "spectator"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Nickname     string    `json:"nickname" db:"nickname"`
	Role         UserRole  `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

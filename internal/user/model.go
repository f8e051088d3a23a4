package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookwell/appointment-backend/internal/auth"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         auth.Role
	IsActive     bool
	IsSuperuser  bool
	CreatedAt    time.Time
}

func (u *User) Principal() auth.Principal {
	return auth.Principal{ID: u.ID, Role: u.Role}
}

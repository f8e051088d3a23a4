package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// Repository contains all DB interactions needed by the user service.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// EmailInUse reports whether any user other than excludeID has the email.
	EmailInUse(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)

	Insert(ctx context.Context, u *User) (*User, error)
	Update(ctx context.Context, u *User) (*User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]User, error)
}

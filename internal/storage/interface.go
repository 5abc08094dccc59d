package storage

import (
	"context"

	"github.com/orbitwise/fdsaas/internal/model"
)

// Storage defines the interface for credential persistence. The auth
// service is the only writer; nothing else mutates User records.
type Storage interface {
	// CreateUser inserts a new user. The uniqueness check and the insert
	// are a single atomic step: concurrent creates for the same username
	// fail all but one with ErrDuplicateUser.
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	DeleteUser(ctx context.Context, id model.UserID) error
}

package repo

import (
	"context"

	"github.com/conceptlabs/auth-service/internal/domain/auth/model"
)

type UserRepo interface {
	// CreateUser inserts a new user and returns the store-assigned id.
	// A duplicate email must surface as errors.ErrAlreadyExists.
	CreateUser(ctx context.Context, u model.User) (uint, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id uint) (model.User, error)

	UpdateUser(ctx context.Context, u model.User) error
}

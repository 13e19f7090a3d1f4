package user

import (
	"context"
)

// Repository lookups return (nil, nil) when no user matches. Create returns
// ErrEmailTaken when the email is already registered.
type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

package category

import (
	"context"
)

// Repository lookups return (nil, nil) when nothing matches. Create and Update
// return ErrNameTaken on a name collision; Update and Delete return
// ErrCategoryNotFound for unknown ids.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*Category, error)
	Delete(ctx context.Context, id int64) error
	IsReferenced(ctx context.Context, id int64) (bool, error)
}

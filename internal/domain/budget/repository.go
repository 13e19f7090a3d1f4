package budget

import (
	"context"
)

// Repository scopes every call by owner. A budget belonging to someone else
// is indistinguishable from a missing one: GetByID returns (nil, nil) and
// Update/Delete return ErrBudgetNotFound.
//
// Create and Update must enforce one budget per (user, category) atomically
// and report a collision as ErrDuplicateCategory.
type Repository interface {
	Create(ctx context.Context, userID int64, params CreateParams) (*Budget, error)
	GetByID(ctx context.Context, id, userID int64) (*Budget, error)
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*Budget, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	ListWithCategoryByUserID(ctx context.Context, userID int64) ([]*WithCategory, error)
	Update(ctx context.Context, id, userID int64, params UpdateParams) (*Budget, error)
	Delete(ctx context.Context, id, userID int64) error
}

// CategoryChecker confirms a category id refers to an existing category.
type CategoryChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

package transaction

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// NewRecord is a validated transaction ready to be stored.
type NewRecord struct {
	CategoryID  int64
	Amount      decimal.Decimal
	Description *string
	Date        civil.Date
}

// Changes holds the fields being updated; nil means unchanged.
type Changes struct {
	CategoryID  *int64
	Amount      *decimal.Decimal
	Description *string
	Date        *civil.Date
}

// Repository scopes every call by owner. GetByID returns (nil, nil) when the
// transaction does not exist or belongs to another user; Update and Delete
// return ErrTransactionNotFound in that case.
type Repository interface {
	Create(ctx context.Context, userID int64, rec NewRecord) (*Transaction, error)
	GetByID(ctx context.Context, id, userID int64) (*Transaction, error)
	Search(ctx context.Context, userID int64, filter Filter, sort Sort, limit, offset int) ([]*Transaction, error)
	Count(ctx context.Context, userID int64, filter Filter) (int64, error)
	Update(ctx context.Context, id, userID int64, changes Changes) (*Transaction, error)
	Delete(ctx context.Context, id, userID int64) error
}

// CategoryChecker confirms a category id refers to an existing category.
type CategoryChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

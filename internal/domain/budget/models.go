package budget

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"finbook/internal/shared/validation"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
	// ErrDuplicateCategory is returned by repositories when a write would give
	// a user a second budget for the same category.
	ErrDuplicateCategory = errors.New("duplicate budget for category")
	// ErrUnknownCategory is returned by repositories when category_id
	// references no category at write time.
	ErrUnknownCategory = errors.New("budget category does not exist")

	ErrBudgetExists        = errors.New("A budget already exists for this category.")
	ErrBudgetCategoryTaken = errors.New("You already have a budget for this category.")
	ErrNoBudgets           = errors.New("No budgets registered to generate the report.")
)

type Budget struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	CategoryID  int64           `json:"category_id"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// WithCategory is a budget joined with its category's name.
type WithCategory struct {
	Budget
	CategoryName string `json:"category_name"`
}

type CreateParams struct {
	CategoryID  int64            `json:"category_id" validate:"required,gt=0"`
	LimitAmount *decimal.Decimal `json:"limit_amount" validate:"required,decimal_gte=0"`
}

func (p *CreateParams) Validate() error {
	return validation.Struct(p)
}

type UpdateParams struct {
	CategoryID  *int64           `json:"category_id" validate:"omitempty,gt=0"`
	LimitAmount *decimal.Decimal `json:"limit_amount" validate:"omitempty,decimal_gte=0"`
}

func (p *UpdateParams) Validate() error {
	return validation.Struct(p)
}

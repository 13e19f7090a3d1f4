package category

import (
	"errors"
	"strings"
	"time"

	"finbook/internal/shared/validation"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryInUse is returned when deleting a category still referenced
	// by a budget or transaction.
	ErrCategoryInUse = errors.New("The category is used by budgets or transactions and cannot be deleted.")
	// ErrNameTaken is returned by repositories when the unique name constraint fails.
	ErrNameTaken = errors.New("category name already taken")
)

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Category is global: it has no owner and every user sees the same set.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateParams struct {
	Name string `json:"name" validate:"required,max=255"`
	Type Type   `json:"type" validate:"required,oneof=income expense"`
}

// Validate trims the name before checking it, so a blank name is missing.
func (p *CreateParams) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	return validation.Struct(p)
}

type UpdateParams struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
	Type *Type   `json:"type" validate:"omitempty,oneof=income expense"`
}

func (p *UpdateParams) Validate() error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
	}
	return validation.Struct(p)
}

func nameTakenError() error {
	return validation.Errors{"name": "The name has already been taken."}
}

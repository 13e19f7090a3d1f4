package transaction

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"finbook/internal/shared/validation"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrUnknownCategory is returned by repositories when category_id
	// references no category at write time.
	ErrUnknownCategory = errors.New("transaction category does not exist")
)

const DateLayout = "2006-01-02"

// Transaction is a dated, signed money movement. The sign of Amount decides
// whether it counts as income or expense; the category's type does not.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	CategoryID  int64           `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description"`
	Date        civil.Date      `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (t *Transaction) Kind() Kind {
	switch t.Amount.Sign() {
	case 1:
		return KindIncome
	case -1:
		return KindExpense
	default:
		return ""
	}
}

type CreateParams struct {
	CategoryID  int64            `json:"category_id" validate:"required,gt=0"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Date        string           `json:"date" validate:"required,datetime=2006-01-02"`
}

func (p *CreateParams) Validate() error {
	return validation.Struct(p)
}

// ParsedDate returns Date as a civil.Date. Call after Validate.
func (p *CreateParams) ParsedDate() (civil.Date, error) {
	return parseDate(p.Date)
}

type UpdateParams struct {
	CategoryID  *int64           `json:"category_id" validate:"omitempty,gt=0"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Date        *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (p *UpdateParams) Validate() error {
	return validation.Struct(p)
}

// ParsedDate returns nil when Date is not being changed.
func (p *UpdateParams) ParsedDate() (*civil.Date, error) {
	if p.Date == nil {
		return nil, nil
	}
	d, err := parseDate(*p.Date)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil || !d.IsValid() {
		return civil.Date{}, fmt.Errorf("invalid date %q", s)
	}
	return d, nil
}

package transaction

import (
	"cmp"
	"net/url"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"finbook/internal/shared/pagination"
	"finbook/internal/shared/validation"
)

// Kind classifies a transaction by the sign of its amount.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind returns "" for anything other than income or expense, which
// means no type filter.
func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindIncome:
		return KindIncome
	case KindExpense:
		return KindExpense
	default:
		return ""
	}
}

type SortField string

const (
	SortByID         SortField = "id"
	SortByAmount     SortField = "amount"
	SortByDate       SortField = "date"
	SortByCategoryID SortField = "category_id"
)

// ParseSortField falls back to SortByDate for unknown names.
func ParseSortField(s string) SortField {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByID, SortByAmount, SortByDate, SortByCategoryID:
		return f
	default:
		return SortByDate
	}
}

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// ParseSortDirection falls back to Desc for anything but "asc".
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(Asc)) {
		return Asc
	}
	return Desc
}

// Filter narrows a user's transactions. Zero fields do not filter.
type Filter struct {
	StartDate  *civil.Date
	EndDate    *civil.Date
	CategoryID *int64
	Kind       Kind
}

// Matches applies the filter to a single transaction. Date bounds are
// inclusive; a zero amount is neither income nor expense.
func (f Filter) Matches(t *Transaction) bool {
	if f.StartDate != nil && t.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.Date.After(*f.EndDate) {
		return false
	}
	if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
		return false
	}
	switch f.Kind {
	case KindIncome:
		return t.Amount.Sign() > 0
	case KindExpense:
		return t.Amount.Sign() < 0
	}
	return true
}

type Sort struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort is newest first.
var DefaultSort = Sort{Field: SortByDate, Direction: Desc}

// Compare orders a before b according to s. Equal keys fall back to id
// ascending so pages are stable.
func (s Sort) Compare(a, b *Transaction) int {
	var c int
	switch s.Field {
	case SortByID:
		c = cmp.Compare(a.ID, b.ID)
	case SortByAmount:
		c = a.Amount.Cmp(b.Amount)
	case SortByCategoryID:
		c = cmp.Compare(a.CategoryID, b.CategoryID)
	default:
		c = compareDates(a.Date, b.Date)
	}
	if s.Direction == Desc {
		c = -c
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func compareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// Query is a fully parsed list request.
type Query struct {
	Filter Filter
	Sort   Sort
	Page   pagination.Params
}

// ParseQuery reads start_date, end_date, category_id, type, sort_by,
// sort_direction, page and per_page. Malformed dates or category ids are
// validation errors; unknown sort and type values fall back to defaults.
func ParseQuery(values url.Values) (Query, error) {
	q := Query{
		Sort: Sort{
			Field:     ParseSortField(values.Get("sort_by")),
			Direction: ParseSortDirection(values.Get("sort_direction")),
		},
		Page: pagination.Parse(values.Get("page"), values.Get("per_page")),
	}
	q.Filter.Kind = ParseKind(values.Get("type"))

	errs := validation.Errors{}

	if s := strings.TrimSpace(values.Get("start_date")); s != "" {
		d, err := parseDate(s)
		if err != nil {
			errs.Add("start_date", "The start date is not a valid date (expected YYYY-MM-DD).")
		} else {
			q.Filter.StartDate = &d
		}
	}
	if s := strings.TrimSpace(values.Get("end_date")); s != "" {
		d, err := parseDate(s)
		if err != nil {
			errs.Add("end_date", "The end date is not a valid date (expected YYYY-MM-DD).")
		} else {
			q.Filter.EndDate = &d
		}
	}
	if s := strings.TrimSpace(values.Get("category_id")); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			errs.Add("category_id", "The category id must be a positive integer.")
		} else {
			q.Filter.CategoryID = &id
		}
	}

	if err := errs.Err(); err != nil {
		return Query{}, err
	}
	return q, nil
}

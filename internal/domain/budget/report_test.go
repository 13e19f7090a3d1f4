package budget

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"finbook/internal/shared/pagination"
)

func withCategory(id, categoryID int64, name, limit string) *WithCategory {
	return &WithCategory{
		Budget: Budget{
			ID:          id,
			UserID:      1,
			CategoryID:  categoryID,
			LimitAmount: decimal.RequireFromString(limit),
		},
		CategoryName: name,
	}
}

func assertDecimal(t *testing.T, field string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", field, got, want)
	}
}

func TestBuildReport_Statistics(t *testing.T) {
	budgets := []*WithCategory{
		withCategory(1, 10, "Food", "100"),
		withCategory(2, 11, "Rent", "200"),
		withCategory(3, 12, "Transport", "300"),
	}

	r, err := BuildReport(budgets, pagination.New(1, 15))
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	assertDecimal(t, "total", r.Statistics.Total, "600")
	assertDecimal(t, "average", r.Statistics.Average, "200")
	assertDecimal(t, "max", r.Statistics.Max, "300")
	assertDecimal(t, "min", r.Statistics.Min, "100")

	if len(r.BudgetsByCategory) != 3 {
		t.Errorf("got %d groups, want 3", len(r.BudgetsByCategory))
	}
	food := r.BudgetsByCategory["Food"]
	if food.Count != 1 {
		t.Errorf("Food count = %d, want 1", food.Count)
	}
	assertDecimal(t, "Food total", food.Total, "100")

	if len(r.Data) != 3 || r.TotalCount != 3 || r.TotalPages != 1 {
		t.Errorf("unexpected page: len=%d total=%d pages=%d", len(r.Data), r.TotalCount, r.TotalPages)
	}
}

func TestBuildReport_PaginationDoesNotAffectStatistics(t *testing.T) {
	budgets := []*WithCategory{
		withCategory(1, 10, "Food", "100"),
		withCategory(2, 11, "Rent", "200"),
		withCategory(3, 12, "Transport", "300"),
	}

	r, err := BuildReport(budgets, pagination.New(2, 2))
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	if len(r.Data) != 1 || r.Data[0].ID != 3 {
		t.Fatalf("page 2 data = %v, want only budget 3", r.Data)
	}
	assertDecimal(t, "total", r.Statistics.Total, "600")
	if r.TotalPages != 2 || r.CurrentPage != 2 || r.PerPage != 2 {
		t.Errorf("unexpected meta: %+v", r)
	}

	r, err = BuildReport(budgets, pagination.New(9, 2))
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	if r.Data == nil || len(r.Data) != 0 {
		t.Errorf("out of range page data = %v, want empty", r.Data)
	}
	assertDecimal(t, "total", r.Statistics.Total, "600")
}

func TestBuildReport_FractionalAmounts(t *testing.T) {
	budgets := []*WithCategory{
		withCategory(1, 10, "Food", "10.10"),
		withCategory(2, 11, "Rent", "0.20"),
		withCategory(3, 12, "Fun", "0"),
	}

	r, err := BuildReport(budgets, pagination.New(1, 15))
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	assertDecimal(t, "total", r.Statistics.Total, "10.30")
	assertDecimal(t, "min", r.Statistics.Min, "0")
	assertDecimal(t, "max", r.Statistics.Max, "10.10")
}

func TestBuildReport_Empty(t *testing.T) {
	_, err := BuildReport(nil, pagination.New(1, 15))
	if !errors.Is(err, ErrNoBudgets) {
		t.Errorf("BuildReport(nil) error = %v, want ErrNoBudgets", err)
	}
}

package budget

import (
	"github.com/shopspring/decimal"

	"finbook/internal/shared/pagination"
)

type Statistics struct {
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
	Max     decimal.Decimal `json:"max"`
	Min     decimal.Decimal `json:"min"`
}

type CategoryTotal struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type Report struct {
	Statistics        Statistics               `json:"statistics"`
	BudgetsByCategory map[string]CategoryTotal `json:"budgets_by_category"`
	Data              []*Budget                `json:"data"`
	TotalCount        int64                    `json:"total_count"`
	CurrentPage       int                      `json:"current_page"`
	PerPage           int                      `json:"per_page"`
	TotalPages        int                      `json:"total_pages"`
}

// BuildReport computes statistics and per-category totals over all of
// budgets, then cuts the page selected by page out of the same list.
// An empty input yields ErrNoBudgets.
func BuildReport(budgets []*WithCategory, page pagination.Params) (*Report, error) {
	if len(budgets) == 0 {
		return nil, ErrNoBudgets
	}

	stats := Statistics{
		Max: budgets[0].LimitAmount,
		Min: budgets[0].LimitAmount,
	}
	groups := make(map[string]CategoryTotal)
	all := make([]*Budget, 0, len(budgets))

	for _, b := range budgets {
		amount := b.LimitAmount
		stats.Total = stats.Total.Add(amount)
		if amount.GreaterThan(stats.Max) {
			stats.Max = amount
		}
		if amount.LessThan(stats.Min) {
			stats.Min = amount
		}

		// Category names are globally unique, so the name is a safe key.
		g := groups[b.CategoryName]
		g.Count++
		g.Total = g.Total.Add(amount)
		groups[b.CategoryName] = g

		budget := b.Budget
		all = append(all, &budget)
	}
	stats.Average = stats.Total.Div(decimal.NewFromInt(int64(len(budgets))))

	total := int64(len(all))
	return &Report{
		Statistics:        stats,
		BudgetsByCategory: groups,
		Data:              pagination.Slice(all, page),
		TotalCount:        total,
		CurrentPage:       page.Page,
		PerPage:           page.PerPage,
		TotalPages:        pagination.TotalPages(total, page.PerPage),
	}, nil
}

package http

import (
	"fmt"
	"net/http"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"finbook/internal/domain/category"
	"finbook/internal/domain/transaction"
	"finbook/internal/shared/pagination"
)

type transactionPage = pagination.Page[*transaction.Transaction]

func TestTransactions_CreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	food := env.createCategory("Food", category.TypeExpense)

	var created transaction.Transaction
	env.mustCreate("/api/v1/transactions", 1, map[string]any{
		"category_id": food,
		"amount":      "-12.50",
		"description": "Lunch",
		"date":        "2024-05-17",
	}, &created)

	rr := env.do(http.MethodGet, fmt.Sprintf("/api/v1/transactions/%d", created.ID), 1, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var got transaction.Transaction
	decode(t, rr, &got)

	if got.CategoryID != food ||
		!got.Amount.Equal(decimal.RequireFromString("-12.50")) ||
		got.Description == nil || *got.Description != "Lunch" ||
		got.Date != (civil.Date{Year: 2024, Month: 5, Day: 17}) ||
		got.UserID != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestTransactions_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	food := env.createCategory("Food", category.TypeExpense)

	tests := []struct {
		name      string
		body      map[string]any
		wantField string
	}{
		{name: "missing amount", body: map[string]any{"category_id": food, "date": "2024-01-01"}, wantField: "amount"},
		{name: "bad date", body: map[string]any{"category_id": food, "amount": 1, "date": "01/02/2024"}, wantField: "date"},
		{name: "impossible date", body: map[string]any{"category_id": food, "amount": 1, "date": "2024-02-30"}, wantField: "date"},
		{name: "unknown category", body: map[string]any{"category_id": 42, "amount": 1, "date": "2024-01-01"}, wantField: "category_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(http.MethodPost, "/api/v1/transactions", 1, tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			var resp MessageResponse
			decode(t, rr, &resp)
			if resp.Message != msgInvalidData || resp.Errors[tt.wantField] == "" {
				t.Errorf("response = %+v, want error on %s", resp, tt.wantField)
			}
		})
	}
}

// seedTransactions creates one transaction per amount on consecutive days of
// March 2024, starting on the 1st.
func seedTransactions(env *testEnv, userID, categoryID int64, amounts ...string) []int64 {
	env.t.Helper()
	ids := make([]int64, len(amounts))
	for i, a := range amounts {
		var tx transaction.Transaction
		env.mustCreate("/api/v1/transactions", userID, map[string]any{
			"category_id": categoryID,
			"amount":      a,
			"date":        fmt.Sprintf("2024-03-%02d", i+1),
		}, &tx)
		ids[i] = tx.ID
	}
	return ids
}

func TestTransactions_TypeFilter(t *testing.T) {
	env := newTestEnv(t)
	cat := env.createCategory("Misc", category.TypeExpense)
	seedTransactions(env, 1, cat, "100", "-20", "0", "50.5", "-0.01")

	tests := []struct {
		query    string
		wantN    int64
		wantSign int
	}{
		{query: "type=income", wantN: 2, wantSign: 1},
		{query: "type=expense", wantN: 2, wantSign: -1},
		{query: "type=whatever", wantN: 5},
		{query: "", wantN: 5},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := env.do(http.MethodGet, "/api/v1/transactions?"+tt.query, 1, nil)
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d", rr.Code)
			}
			var page transactionPage
			decode(t, rr, &page)
			if page.TotalCount != tt.wantN {
				t.Errorf("total = %d, want %d", page.TotalCount, tt.wantN)
			}
			if tt.wantSign == 0 {
				return
			}
			for _, tx := range page.Data {
				if tx.Amount.Sign() != tt.wantSign {
					t.Errorf("amount %s has wrong sign", tx.Amount)
				}
			}
		})
	}
}

func TestTransactions_DefaultOrderPagination(t *testing.T) {
	env := newTestEnv(t)
	cat := env.createCategory("Misc", category.TypeExpense)
	ids := seedTransactions(env, 1, cat, "1", "2", "3", "4", "5")

	tests := []struct {
		page    int
		wantIDs []int64
	}{
		{page: 1, wantIDs: []int64{ids[4], ids[3]}},
		{page: 2, wantIDs: []int64{ids[2], ids[1]}},
		{page: 3, wantIDs: []int64{ids[0]}},
		{page: 4, wantIDs: []int64{}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			rr := env.do(http.MethodGet, fmt.Sprintf("/api/v1/transactions?per_page=2&page=%d", tt.page), 1, nil)
			var page transactionPage
			decode(t, rr, &page)

			if page.TotalCount != 5 || page.TotalPages != 3 || page.CurrentPage != tt.page {
				t.Errorf("meta = total %d pages %d current %d", page.TotalCount, page.TotalPages, page.CurrentPage)
			}
			if len(page.Data) != len(tt.wantIDs) {
				t.Fatalf("got %d rows, want %d", len(page.Data), len(tt.wantIDs))
			}
			for i, tx := range page.Data {
				if tx.ID != tt.wantIDs[i] {
					t.Errorf("row %d = %d, want %d", i, tx.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestTransactions_DateRangeCategoryAndSort(t *testing.T) {
	env := newTestEnv(t)
	food := env.createCategory("Food", category.TypeExpense)
	rent := env.createCategory("Rent", category.TypeExpense)
	foodIDs := seedTransactions(env, 1, food, "-30", "-10", "-20", "-40")
	seedTransactions(env, 1, rent, "-500")

	path := fmt.Sprintf("/api/v1/transactions?start_date=2024-03-02&end_date=2024-03-03&category_id=%d&sort_by=amount&sort_direction=asc", food)
	rr := env.do(http.MethodGet, path, 1, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var page transactionPage
	decode(t, rr, &page)

	// 2024-03-02 is -10, 2024-03-03 is -20; amount ascending puts -20 first.
	if len(page.Data) != 2 || page.Data[0].ID != foodIDs[2] || page.Data[1].ID != foodIDs[1] {
		t.Errorf("got %+v", page.Data)
	}
}

func TestTransactions_BadQuery(t *testing.T) {
	env := newTestEnv(t)
	for _, q := range []string{"start_date=yesterday", "end_date=2024-13-01", "category_id=abc"} {
		if rr := env.do(http.MethodGet, "/api/v1/transactions?"+q, 1, nil); rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, rr.Code)
		}
	}
}

func TestTransactions_OtherUsersTransactionIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	cat := env.createCategory("Misc", category.TypeExpense)
	ids := seedTransactions(env, 1, cat, "10")
	path := fmt.Sprintf("/api/v1/transactions/%d", ids[0])

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		if rr := env.do(method, path, 2, map[string]any{"amount": 1}); rr.Code != http.StatusNotFound {
			t.Errorf("%s as another user: status = %d, want 404", method, rr.Code)
		}
	}

	var page transactionPage
	decode(t, env.do(http.MethodGet, "/api/v1/transactions", 2, nil), &page)
	if page.TotalCount != 0 || len(page.Data) != 0 {
		t.Errorf("another user's list = %+v", page)
	}
}

func TestTransactions_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	cat := env.createCategory("Misc", category.TypeExpense)
	ids := seedTransactions(env, 1, cat, "10")
	path := fmt.Sprintf("/api/v1/transactions/%d", ids[0])

	rr := env.do(http.MethodPatch, path, 1, map[string]any{"amount": "-7.25", "date": "2024-04-01"})
	if rr.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rr.Code, rr.Body.String())
	}
	var tx transaction.Transaction
	decode(t, rr, &tx)
	if !tx.Amount.Equal(decimal.RequireFromString("-7.25")) || tx.Date.String() != "2024-04-01" || tx.CategoryID != cat {
		t.Errorf("updated = %+v", tx)
	}

	if rr := env.do(http.MethodPatch, path, 1, map[string]any{"date": "nope"}); rr.Code != http.StatusBadRequest {
		t.Errorf("bad date update status = %d, want 400", rr.Code)
	}

	if rr := env.do(http.MethodDelete, path, 1, nil); rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}
	if rr := env.do(http.MethodGet, path, 1, nil); rr.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", rr.Code)
	}
}

func TestTransactions_NonNumericID(t *testing.T) {
	env := newTestEnv(t)
	if rr := env.do(http.MethodGet, "/api/v1/transactions/abc", 1, nil); rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

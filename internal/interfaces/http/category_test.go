package http

import (
	"fmt"
	"net/http"
	"testing"

	"finbook/internal/domain/category"
)

func TestCategories_CRUD(t *testing.T) {
	env := newTestEnv(t)

	rent := env.createCategory("Rent", category.TypeExpense)
	env.createCategory("Salary", category.TypeIncome)
	env.createCategory("Food", category.TypeExpense)

	var list []category.Category
	decode(t, env.do(http.MethodGet, "/api/v1/categories", 1, nil), &list)
	if len(list) != 3 || list[0].Name != "Food" || list[2].Name != "Salary" {
		t.Errorf("list = %+v", list)
	}

	path := fmt.Sprintf("/api/v1/categories/%d", rent)
	rr := env.do(http.MethodPut, path, 1, map[string]any{"name": "Housing"})
	if rr.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rr.Code, rr.Body.String())
	}
	var updated category.Category
	decode(t, rr, &updated)
	if updated.Name != "Housing" || updated.Type != category.TypeExpense {
		t.Errorf("updated = %+v", updated)
	}

	if rr := env.do(http.MethodDelete, path, 1, nil); rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}
	if rr := env.do(http.MethodGet, path, 1, nil); rr.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", rr.Code)
	}
}

func TestCategories_Validation(t *testing.T) {
	env := newTestEnv(t)
	env.createCategory("Food", category.TypeExpense)

	tests := []struct {
		name      string
		body      map[string]any
		wantField string
	}{
		{name: "missing name", body: map[string]any{"type": "expense"}, wantField: "name"},
		{name: "blank name", body: map[string]any{"name": "   ", "type": "expense"}, wantField: "name"},
		{name: "duplicate after trim", body: map[string]any{"name": " Food ", "type": "expense"}, wantField: "name"},
		{name: "bad type", body: map[string]any{"name": "X", "type": "transfer"}, wantField: "type"},
		{name: "duplicate name", body: map[string]any{"name": "Food", "type": "expense"}, wantField: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(http.MethodPost, "/api/v1/categories", 1, tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			var resp MessageResponse
			decode(t, rr, &resp)
			if resp.Errors[tt.wantField] == "" {
				t.Errorf("errors = %v, want entry for %s", resp.Errors, tt.wantField)
			}
		})
	}
}

func TestCategories_DeleteInUse(t *testing.T) {
	env := newTestEnv(t)
	food := env.createCategory("Food", category.TypeExpense)
	env.mustCreate("/api/v1/transactions", 1, map[string]any{"category_id": food, "amount": -5, "date": "2024-01-01"}, nil)

	rr := env.do(http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d", food), 1, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var resp MessageResponse
	decode(t, rr, &resp)
	if resp.Message != category.ErrCategoryInUse.Error() {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestCategories_MethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	if rr := env.do(http.MethodDelete, "/api/v1/categories", 1, nil); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}
}

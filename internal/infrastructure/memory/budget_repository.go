package memory

import (
	"cmp"
	"context"
	"slices"

	"finbook/internal/domain/budget"
)

type BudgetRepository struct {
	s *Store
}

func NewBudgetRepository(s *Store) *BudgetRepository {
	return &BudgetRepository{s: s}
}

// hasBudgetFor reports whether userID already has a budget for categoryID
// other than exceptID. Callers hold the lock.
func (r *BudgetRepository) hasBudgetFor(userID, categoryID, exceptID int64) bool {
	for _, b := range r.s.budgets {
		if b.ID != exceptID && b.UserID == userID && b.CategoryID == categoryID {
			return true
		}
	}
	return false
}

func (r *BudgetRepository) Create(_ context.Context, userID int64, params budget.CreateParams) (*budget.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[params.CategoryID]; !ok {
		return nil, budget.ErrUnknownCategory
	}
	if r.hasBudgetFor(userID, params.CategoryID, 0) {
		return nil, budget.ErrDuplicateCategory
	}

	r.s.lastBudgetID++
	now := r.s.now()
	b := &budget.Budget{
		ID:          r.s.lastBudgetID,
		UserID:      userID,
		CategoryID:  params.CategoryID,
		LimitAmount: *params.LimitAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.budgets[b.ID] = b

	out := *b
	return &out, nil
}

func (r *BudgetRepository) GetByID(_ context.Context, id, userID int64) (*budget.Budget, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.budgets[id]
	if !ok || b.UserID != userID {
		return nil, nil
	}
	out := *b
	return &out, nil
}

// owned returns copies of the user's budgets ordered by id. Callers hold the lock.
func (r *BudgetRepository) owned(userID int64) []*budget.Budget {
	var out []*budget.Budget
	for _, b := range r.s.budgets {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *budget.Budget) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (r *BudgetRepository) ListByUserID(_ context.Context, userID int64, limit, offset int) ([]*budget.Budget, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return window(r.owned(userID), limit, offset), nil
}

func (r *BudgetRepository) CountByUserID(_ context.Context, userID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, b := range r.s.budgets {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *BudgetRepository) ListWithCategoryByUserID(_ context.Context, userID int64) ([]*budget.WithCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*budget.WithCategory
	for _, b := range r.owned(userID) {
		c, ok := r.s.categories[b.CategoryID]
		if !ok {
			continue
		}
		out = append(out, &budget.WithCategory{Budget: *b, CategoryName: c.Name})
	}
	return out, nil
}

func (r *BudgetRepository) Update(_ context.Context, id, userID int64, params budget.UpdateParams) (*budget.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.budgets[id]
	if !ok || b.UserID != userID {
		return nil, budget.ErrBudgetNotFound
	}
	if params.CategoryID != nil {
		if _, ok := r.s.categories[*params.CategoryID]; !ok {
			return nil, budget.ErrUnknownCategory
		}
		if r.hasBudgetFor(userID, *params.CategoryID, id) {
			return nil, budget.ErrDuplicateCategory
		}
	}

	if params.CategoryID != nil {
		b.CategoryID = *params.CategoryID
	}
	if params.LimitAmount != nil {
		b.LimitAmount = *params.LimitAmount
	}
	b.UpdatedAt = r.s.now()

	out := *b
	return &out, nil
}

func (r *BudgetRepository) Delete(_ context.Context, id, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.budgets[id]
	if !ok || b.UserID != userID {
		return budget.ErrBudgetNotFound
	}
	delete(r.s.budgets, id)
	return nil
}

// window returns items[offset:offset+limit], clamped, never nil.
func window[T any](items []T, limit, offset int) []T {
	if offset < 0 || offset >= len(items) || limit <= 0 {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

package memory

import (
	"cmp"
	"context"
	"slices"

	"finbook/internal/domain/category"
)

type CategoryRepository struct {
	s *Store
}

func NewCategoryRepository(s *Store) *CategoryRepository {
	return &CategoryRepository{s: s}
}

// nameTaken reports whether another category already uses name. Callers hold the lock.
func (r *CategoryRepository) nameTaken(name string, exceptID int64) bool {
	for _, c := range r.s.categories {
		if c.ID != exceptID && c.Name == name {
			return true
		}
	}
	return false
}

func (r *CategoryRepository) Create(_ context.Context, params category.CreateParams) (*category.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(params.Name, 0) {
		return nil, category.ErrNameTaken
	}

	r.s.lastCategoryID++
	now := r.s.now()
	c := &category.Category{
		ID:        r.s.lastCategoryID,
		Name:      params.Name,
		Type:      params.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.categories[c.ID] = c

	out := *c
	return &out, nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id int64) (*category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (r *CategoryRepository) GetByName(_ context.Context, name string) (*category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.categories {
		if c.Name == name {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepository) List(_ context.Context) ([]*category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*category.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cp := *c
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *category.Category) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *CategoryRepository) Update(_ context.Context, id int64, params category.UpdateParams) (*category.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	if params.Name != nil && r.nameTaken(*params.Name, id) {
		return nil, category.ErrNameTaken
	}

	if params.Name != nil {
		c.Name = *params.Name
	}
	if params.Type != nil {
		c.Type = *params.Type
	}
	c.UpdatedAt = r.s.now()

	out := *c
	return &out, nil
}

func (r *CategoryRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return category.ErrCategoryNotFound
	}
	if r.referenced(id) {
		return category.ErrCategoryInUse
	}
	delete(r.s.categories, id)
	return nil
}

func (r *CategoryRepository) IsReferenced(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.referenced(id), nil
}

func (r *CategoryRepository) referenced(id int64) bool {
	for _, b := range r.s.budgets {
		if b.CategoryID == id {
			return true
		}
	}
	for _, t := range r.s.transactions {
		if t.CategoryID == id {
			return true
		}
	}
	return false
}

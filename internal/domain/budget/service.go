package budget

import (
	"context"
	"errors"
	"fmt"

	"finbook/internal/shared/pagination"
	"finbook/internal/shared/validation"
)

type Service struct {
	repo       Repository
	categories CategoryChecker
}

func NewService(repo Repository, categories CategoryChecker) *Service {
	return &Service{repo: repo, categories: categories}
}

func (s *Service) Create(ctx context.Context, userID int64, params CreateParams) (*Budget, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, params.CategoryID); err != nil {
		return nil, err
	}

	b, err := s.repo.Create(ctx, userID, params)
	if errors.Is(err, ErrDuplicateCategory) {
		return nil, ErrBudgetExists
	}
	if errors.Is(err, ErrUnknownCategory) {
		return nil, invalidCategory()
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, id, userID int64) (*Budget, error) {
	b, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBudgetNotFound
	}
	return b, nil
}

// List returns the user's budgets ordered by id.
func (s *Service) List(ctx context.Context, userID int64, page pagination.Params) (pagination.Page[*Budget], error) {
	total, err := s.repo.CountByUserID(ctx, userID)
	if err != nil {
		return pagination.Page[*Budget]{}, err
	}

	var budgets []*Budget
	if int64(page.Offset()) < total {
		budgets, err = s.repo.ListByUserID(ctx, userID, page.Limit(), page.Offset())
		if err != nil {
			return pagination.Page[*Budget]{}, err
		}
	}
	return pagination.NewPage(budgets, total, page), nil
}

func (s *Service) Update(ctx context.Context, id, userID int64, params UpdateParams) (*Budget, error) {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.CategoryID != nil {
		if err := s.checkCategory(ctx, *params.CategoryID); err != nil {
			return nil, err
		}
	}

	b, err := s.repo.Update(ctx, id, userID, params)
	if errors.Is(err, ErrDuplicateCategory) {
		return nil, ErrBudgetCategoryTaken
	}
	if errors.Is(err, ErrUnknownCategory) {
		return nil, invalidCategory()
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	return s.repo.Delete(ctx, id, userID)
}

// Report aggregates every budget the user owns; page only selects which
// budgets appear in the data slice.
func (s *Service) Report(ctx context.Context, userID int64, page pagination.Params) (*Report, error) {
	budgets, err := s.repo.ListWithCategoryByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildReport(budgets, page)
}

func (s *Service) checkCategory(ctx context.Context, categoryID int64) error {
	ok, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if !ok {
		return invalidCategory()
	}
	return nil
}

func invalidCategory() error {
	return validation.Errors{"category_id": "The selected category id is invalid."}
}

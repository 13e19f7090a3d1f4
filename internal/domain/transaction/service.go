package transaction

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

func (s *Service) Create(ctx context.Context, userID int64, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	date, err := params.ParsedDate()
	if err != nil {
		return nil, validation.Errors{"date": "The date is not a valid date (expected YYYY-MM-DD)."}
	}
	if err := s.checkCategory(ctx, params.CategoryID); err != nil {
		return nil, err
	}

	t, err := s.repo.Create(ctx, userID, NewRecord{
		CategoryID:  params.CategoryID,
		Amount:      *params.Amount,
		Description: params.Description,
		Date:        date,
	})
	if errors.Is(err, ErrUnknownCategory) {
		return nil, invalidCategory()
	}
	return t, err
}

func (s *Service) Get(ctx context.Context, id, userID int64) (*Transaction, error) {
	t, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTransactionNotFound
	}
	return t, nil
}

// List runs a filtered, sorted, paginated query over the user's
// transactions. A page past the end yields empty data.
func (s *Service) List(ctx context.Context, userID int64, q Query) (pagination.Page[*Transaction], error) {
	total, err := s.repo.Count(ctx, userID, q.Filter)
	if err != nil {
		return pagination.Page[*Transaction]{}, fmt.Errorf("failed to count transactions: %w", err)
	}

	var items []*Transaction
	if int64(q.Page.Offset()) < total {
		items, err = s.repo.Search(ctx, userID, q.Filter, q.Sort, q.Page.Limit(), q.Page.Offset())
		if err != nil {
			return pagination.Page[*Transaction]{}, fmt.Errorf("failed to search transactions: %w", err)
		}
	}
	return pagination.NewPage(items, total, q.Page), nil
}

func (s *Service) Update(ctx context.Context, id, userID int64, params UpdateParams) (*Transaction, error) {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	date, err := params.ParsedDate()
	if err != nil {
		return nil, validation.Errors{"date": "The date is not a valid date (expected YYYY-MM-DD)."}
	}
	if params.CategoryID != nil {
		if err := s.checkCategory(ctx, *params.CategoryID); err != nil {
			return nil, err
		}
	}

	t, err := s.repo.Update(ctx, id, userID, Changes{
		CategoryID:  params.CategoryID,
		Amount:      params.Amount,
		Description: params.Description,
		Date:        date,
	})
	if errors.Is(err, ErrUnknownCategory) {
		return nil, invalidCategory()
	}
	return t, err
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	return s.repo.Delete(ctx, id, userID)
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

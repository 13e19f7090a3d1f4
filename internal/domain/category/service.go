package category

import (
	"context"
	"errors"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(ctx, params.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if existing != nil {
		return nil, nameTakenError()
	}

	c, err := s.repo.Create(ctx, params)
	if errors.Is(err, ErrNameTaken) {
		return nil, nameTakenError()
	}
	return c, err
}

func (s *Service) Get(ctx context.Context, id int64) (*Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

// Exists reports whether id names a category. Budget and transaction
// services use it for referential checks.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return c != nil, nil
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Category, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if params.Name != nil {
		existing, err := s.repo.GetByName(ctx, *params.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check category name: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, nameTakenError()
		}
	}

	c, err := s.repo.Update(ctx, id, params)
	if errors.Is(err, ErrNameTaken) {
		return nil, nameTakenError()
	}
	return c, err
}

// Delete refuses to remove a category that budgets or transactions still point at.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	inUse, err := s.repo.IsReferenced(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category references: %w", err)
	}
	if inUse {
		return ErrCategoryInUse
	}

	return s.repo.Delete(ctx, id)
}

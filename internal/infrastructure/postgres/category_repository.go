package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"finbook/internal/domain/category"
)

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = `id, name, type, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (*category.Category, error) {
	var c category.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, params category.CreateParams) (*category.Category, error) {
	query := `
		INSERT INTO categories (name, type)
		VALUES ($1, $2)
		RETURNING ` + categoryColumns

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, params.Name, params.Type))
	if isUniqueViolation(err, constraintCategoriesName) {
		return nil, category.ErrNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*category.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id int64, params category.UpdateParams) (*category.Category, error) {
	query := `
		UPDATE categories
		SET name = COALESCE($1, name),
		    type = COALESCE($2, type),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING ` + categoryColumns

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, params.Name, params.Type, id))
	if err == sql.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if isUniqueViolation(err, constraintCategoriesName) {
		return nil, category.ErrNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return category.ErrCategoryInUse
	}
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) IsReferenced(ctx context.Context, id int64) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM budgets WHERE category_id = $1)
		    OR EXISTS (SELECT 1 FROM transactions WHERE category_id = $1)
	`

	var referenced bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&referenced); err != nil {
		return false, fmt.Errorf("failed to check category references: %w", err)
	}
	return referenced, nil
}

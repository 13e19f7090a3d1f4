package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"finbook/internal/domain/budget"
)

type BudgetRepository struct {
	db *DB
}

func NewBudgetRepository(db *DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

const budgetColumns = `id, user_id, category_id, limit_amount, created_at, updated_at`

func scanBudget(row interface{ Scan(...any) error }) (*budget.Budget, error) {
	var b budget.Budget
	if err := row.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.LimitAmount, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts unless the user already has a budget for the category. The
// conflict clause makes the check and the insert a single statement.
func (r *BudgetRepository) Create(ctx context.Context, userID int64, params budget.CreateParams) (*budget.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, category_id, limit_amount)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT ` + constraintBudgetsCategory + ` DO NOTHING
		RETURNING ` + budgetColumns

	b, err := scanBudget(r.db.QueryRowContext(ctx, query, userID, params.CategoryID, params.LimitAmount))
	if err == sql.ErrNoRows {
		return nil, budget.ErrDuplicateCategory
	}
	if isForeignKeyViolation(err) {
		return nil, budget.ErrUnknownCategory
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return b, nil
}

func (r *BudgetRepository) GetByID(ctx context.Context, id, userID int64) (*budget.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1 AND user_id = $2`

	b, err := scanBudget(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return b, nil
}

func (r *BudgetRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*budget.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1
		ORDER BY id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []*budget.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

func (r *BudgetRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM budgets WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count budgets: %w", err)
	}
	return count, nil
}

func (r *BudgetRepository) ListWithCategoryByUserID(ctx context.Context, userID int64) ([]*budget.WithCategory, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.limit_amount, b.created_at, b.updated_at, c.name
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.user_id = $1
		ORDER BY b.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets with category: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.WithCategory
	for rows.Next() {
		var b budget.WithCategory
		err := rows.Scan(
			&b.ID, &b.UserID, &b.CategoryID, &b.LimitAmount, &b.CreatedAt, &b.UpdatedAt,
			&b.CategoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

func (r *BudgetRepository) Update(ctx context.Context, id, userID int64, params budget.UpdateParams) (*budget.Budget, error) {
	query := `
		UPDATE budgets
		SET category_id = COALESCE($1, category_id),
		    limit_amount = COALESCE($2, limit_amount),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND user_id = $4
		RETURNING ` + budgetColumns

	b, err := scanBudget(r.db.QueryRowContext(ctx, query, params.CategoryID, params.LimitAmount, id, userID))
	if err == sql.ErrNoRows {
		return nil, budget.ErrBudgetNotFound
	}
	if isUniqueViolation(err, constraintBudgetsCategory) {
		return nil, budget.ErrDuplicateCategory
	}
	if isForeignKeyViolation(err) {
		return nil, budget.ErrUnknownCategory
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return b, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return budget.ErrBudgetNotFound
	}
	return nil
}

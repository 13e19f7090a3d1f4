package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"finbook/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, category_id, amount, description, date, created_at, updated_at`

// sortColumns is the only source of ORDER BY identifiers.
var sortColumns = map[transaction.SortField]string{
	transaction.SortByID:         "id",
	transaction.SortByAmount:     "amount",
	transaction.SortByDate:       "date",
	transaction.SortByCategoryID: "category_id",
}

func scanTransaction(row interface{ Scan(...any) error }) (*transaction.Transaction, error) {
	var (
		t    transaction.Transaction
		date time.Time
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Description, &date,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Date = civil.DateOf(date)
	return &t, nil
}

func (r *TransactionRepository) Create(ctx context.Context, userID int64, rec transaction.NewRecord) (*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, category_id, amount, description, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + transactionColumns

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query,
		userID, rec.CategoryID, rec.Amount, rec.Description, rec.Date.String(),
	))
	if isForeignKeyViolation(err) {
		return nil, transaction.ErrUnknownCategory
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return t, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id, userID int64) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

// whereClause renders filter as a WHERE clause whose placeholders start at $1
// with the owner id.
func whereClause(userID int64, filter transaction.Filter) (string, []any) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}

	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.StartDate != nil {
		add("date >= $%d", filter.StartDate.String())
	}
	if filter.EndDate != nil {
		add("date <= $%d", filter.EndDate.String())
	}
	if filter.CategoryID != nil {
		add("category_id = $%d", *filter.CategoryID)
	}
	switch filter.Kind {
	case transaction.KindIncome:
		conditions = append(conditions, "amount > 0")
	case transaction.KindExpense:
		conditions = append(conditions, "amount < 0")
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func orderClause(s transaction.Sort) string {
	col, ok := sortColumns[s.Field]
	if !ok {
		col = sortColumns[transaction.SortByDate]
	}
	dir := "DESC"
	if s.Direction == transaction.Asc {
		dir = "ASC"
	}
	if col == "id" {
		return "ORDER BY id " + dir
	}
	return "ORDER BY " + col + " " + dir + ", id ASC"
}

func (r *TransactionRepository) Search(ctx context.Context, userID int64, filter transaction.Filter, sort transaction.Sort, limit, offset int) ([]*transaction.Transaction, error) {
	where, args := whereClause(userID, filter)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, transactionColumns, where, orderClause(sort), len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search transactions: %w", err)
	}
	defer rows.Close()

	transactions := []*transaction.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

func (r *TransactionRepository) Count(ctx context.Context, userID int64, filter transaction.Filter) (int64, error) {
	where, args := whereClause(userID, filter)

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (r *TransactionRepository) Update(ctx context.Context, id, userID int64, changes transaction.Changes) (*transaction.Transaction, error) {
	var date *string
	if changes.Date != nil {
		s := changes.Date.String()
		date = &s
	}

	query := `
		UPDATE transactions
		SET category_id = COALESCE($1, category_id),
		    amount = COALESCE($2, amount),
		    description = COALESCE($3, description),
		    date = COALESCE($4::date, date),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5 AND user_id = $6
		RETURNING ` + transactionColumns

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query,
		changes.CategoryID, changes.Amount, changes.Description, date, id, userID,
	))
	if err == sql.ErrNoRows {
		return nil, transaction.ErrTransactionNotFound
	}
	if isForeignKeyViolation(err) {
		return nil, transaction.ErrUnknownCategory
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return t, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return transaction.ErrTransactionNotFound
	}
	return nil
}

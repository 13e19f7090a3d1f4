package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// constraint names from migrations/000001_init_schema.up.sql
const (
	constraintUsersEmail      = "users_email_key"
	constraintCategoriesName  = "categories_name_key"
	constraintBudgetsCategory = "budgets_user_category_key"
)

func pqError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

func isUniqueViolation(err error, constraint string) bool {
	pqErr, ok := pqError(err)
	return ok && string(pqErr.Code) == codeUniqueViolation && pqErr.Constraint == constraint
}

func isForeignKeyViolation(err error) bool {
	pqErr, ok := pqError(err)
	return ok && string(pqErr.Code) == codeForeignKeyViolation
}

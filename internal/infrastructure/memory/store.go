// Package memory is an in-process record store implementing every domain
// repository. A single lock covers all tables so cross-table checks (budget
// uniqueness, category references) happen in one critical section.
package memory

import (
	"sync"
	"time"

	"finbook/internal/domain/budget"
	"finbook/internal/domain/category"
	"finbook/internal/domain/transaction"
	"finbook/internal/domain/user"
)

type Store struct {
	mu sync.RWMutex

	users        map[int64]*user.User
	categories   map[int64]*category.Category
	budgets      map[int64]*budget.Budget
	transactions map[int64]*transaction.Transaction

	lastUserID        int64
	lastCategoryID    int64
	lastBudgetID      int64
	lastTransactionID int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:        make(map[int64]*user.User),
		categories:   make(map[int64]*category.Category),
		budgets:      make(map[int64]*budget.Budget),
		transactions: make(map[int64]*transaction.Transaction),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

package memory

import (
	"context"
	"slices"

	"finbook/internal/domain/transaction"
)

type TransactionRepository struct {
	s *Store
}

func NewTransactionRepository(s *Store) *TransactionRepository {
	return &TransactionRepository{s: s}
}

func copyTransaction(t *transaction.Transaction) *transaction.Transaction {
	out := *t
	if t.Description != nil {
		d := *t.Description
		out.Description = &d
	}
	return &out
}

func (r *TransactionRepository) Create(_ context.Context, userID int64, rec transaction.NewRecord) (*transaction.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[rec.CategoryID]; !ok {
		return nil, transaction.ErrUnknownCategory
	}

	r.s.lastTransactionID++
	now := r.s.now()
	t := &transaction.Transaction{
		ID:          r.s.lastTransactionID,
		UserID:      userID,
		CategoryID:  rec.CategoryID,
		Amount:      rec.Amount,
		Description: rec.Description,
		Date:        rec.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	t = copyTransaction(t)
	r.s.transactions[t.ID] = t

	return copyTransaction(t), nil
}

func (r *TransactionRepository) GetByID(_ context.Context, id, userID int64) (*transaction.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.transactions[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	return copyTransaction(t), nil
}

// matching returns copies of the user's transactions that pass filter. Callers hold the lock.
func (r *TransactionRepository) matching(userID int64, filter transaction.Filter) []*transaction.Transaction {
	var out []*transaction.Transaction
	for _, t := range r.s.transactions {
		if t.UserID == userID && filter.Matches(t) {
			out = append(out, copyTransaction(t))
		}
	}
	return out
}

func (r *TransactionRepository) Search(_ context.Context, userID int64, filter transaction.Filter, sort transaction.Sort, limit, offset int) ([]*transaction.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.matching(userID, filter)
	slices.SortFunc(out, sort.Compare)
	return window(out, limit, offset), nil
}

func (r *TransactionRepository) Count(_ context.Context, userID int64, filter transaction.Filter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, t := range r.s.transactions {
		if t.UserID == userID && filter.Matches(t) {
			n++
		}
	}
	return n, nil
}

func (r *TransactionRepository) Update(_ context.Context, id, userID int64, changes transaction.Changes) (*transaction.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.transactions[id]
	if !ok || t.UserID != userID {
		return nil, transaction.ErrTransactionNotFound
	}
	if changes.CategoryID != nil {
		if _, ok := r.s.categories[*changes.CategoryID]; !ok {
			return nil, transaction.ErrUnknownCategory
		}
	}

	if changes.CategoryID != nil {
		t.CategoryID = *changes.CategoryID
	}
	if changes.Amount != nil {
		t.Amount = *changes.Amount
	}
	if changes.Description != nil {
		d := *changes.Description
		t.Description = &d
	}
	if changes.Date != nil {
		t.Date = *changes.Date
	}
	t.UpdatedAt = r.s.now()

	return copyTransaction(t), nil
}

func (r *TransactionRepository) Delete(_ context.Context, id, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.transactions[id]
	if !ok || t.UserID != userID {
		return transaction.ErrTransactionNotFound
	}
	delete(r.s.transactions, id)
	return nil
}

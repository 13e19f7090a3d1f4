package memory

import (
	"context"
	"strings"

	"finbook/internal/domain/user"
)

type UserRepository struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

func (r *UserRepository) Create(_ context.Context, params user.CreateUserParams) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, params.Email) {
			return nil, user.ErrEmailTaken
		}
	}

	r.s.lastUserID++
	now := r.s.now()
	u := &user.User{
		ID:           r.s.lastUserID,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.s.users[u.ID] = u

	out := *u
	return &out, nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

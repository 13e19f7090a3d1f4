package user

import (
	"errors"
	"strings"
	"time"

	"finbook/internal/shared/validation"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeEmail is the stored and compared form of an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
}

// RegisterParams is the sign-up form.
type RegisterParams struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

func (p *RegisterParams) Validate() error {
	p.Email = NormalizeEmail(p.Email)
	return validation.Struct(p)
}

type LoginParams struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (p *LoginParams) Validate() error {
	p.Email = NormalizeEmail(p.Email)
	return validation.Struct(p)
}

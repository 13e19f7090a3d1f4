// Package seed fills a fresh database with the default categories and an
// optional demo account.
package seed

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"finbook/internal/domain/budget"
	"finbook/internal/domain/category"
	"finbook/internal/domain/transaction"
	"finbook/internal/domain/user"
	"finbook/internal/shared/auth"
)

var DefaultCategories = []category.CreateParams{
	{Name: "Salary", Type: category.TypeIncome},
	{Name: "Rent", Type: category.TypeExpense},
	{Name: "Food", Type: category.TypeExpense},
	{Name: "Transport", Type: category.TypeExpense},
}

const (
	minBudgetLimit = 10
	maxBudgetLimit = 1000
	demoDays       = 90
)

// Categories creates every default category whose name is not taken yet and
// returns how many were created.
func Categories(ctx context.Context, repo category.Repository) (int, error) {
	created := 0
	for _, params := range DefaultCategories {
		existing, err := repo.GetByName(ctx, params.Name)
		if err != nil {
			return created, fmt.Errorf("failed to look up category %q: %w", params.Name, err)
		}
		if existing != nil {
			continue
		}
		_, err = repo.Create(ctx, params)
		if errors.Is(err, category.ErrNameTaken) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("failed to create category %q: %w", params.Name, err)
		}
		created++
	}
	return created, nil
}

type DemoDeps struct {
	Users        user.Repository
	Categories   category.Repository
	Budgets      *budget.Service
	Transactions *transaction.Service
}

type DemoConfig struct {
	Email        string
	Password     string
	Transactions int
	// Seed makes the generated data reproducible.
	Seed  int64
	Today civil.Date
}

type DemoResult struct {
	User         *user.User
	Budgets      int
	Transactions int
}

// Demo creates (or reuses) the demo user, gives it one budget per expense
// category and generates random transactions over the last 90 days.
func Demo(ctx context.Context, deps DemoDeps, cfg DemoConfig) (*DemoResult, error) {
	faker := gofakeit.New(cfg.Seed)

	u, err := demoUser(ctx, deps.Users, faker, cfg)
	if err != nil {
		return nil, err
	}

	categories, err := deps.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, errors.New("no categories to seed against; run the seed command first")
	}

	result := &DemoResult{User: u}

	for _, c := range categories {
		if c.Type != category.TypeExpense {
			continue
		}
		limit := decimal.NewFromInt(int64(faker.Number(minBudgetLimit, maxBudgetLimit)))
		_, err := deps.Budgets.Create(ctx, u.ID, budget.CreateParams{CategoryID: c.ID, LimitAmount: &limit})
		if errors.Is(err, budget.ErrBudgetExists) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create budget for %q: %w", c.Name, err)
		}
		result.Budgets++
	}

	for range cfg.Transactions {
		c := categories[faker.Number(0, len(categories)-1)]
		amount := randomAmount(faker, c.Type)
		description := faker.Sentence(3)
		date := cfg.Today.AddDays(-faker.Number(0, demoDays-1))

		_, err := deps.Transactions.Create(ctx, u.ID, transaction.CreateParams{
			CategoryID:  c.ID,
			Amount:      &amount,
			Description: &description,
			Date:        date.String(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create transaction: %w", err)
		}
		result.Transactions++
	}

	return result, nil
}

func demoUser(ctx context.Context, users user.Repository, faker *gofakeit.Faker, cfg DemoConfig) (*user.User, error) {
	email := user.NormalizeEmail(cfg.Email)
	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up demo user: %w", err)
	}
	if u != nil {
		return u, nil
	}
	if cfg.Password == "" {
		return nil, errors.New("a password is required to create the demo user")
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}
	u, err = users.Create(ctx, user.CreateUserParams{
		Name:         faker.Name(),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create demo user: %w", err)
	}
	return u, nil
}

// randomAmount follows the category type: income is positive, expense negative.
func randomAmount(faker *gofakeit.Faker, t category.Type) decimal.Decimal {
	if t == category.TypeIncome {
		return decimal.NewFromFloat(faker.Price(500, 5000)).Round(2)
	}
	return decimal.NewFromFloat(faker.Price(1, 300)).Round(2).Neg()
}

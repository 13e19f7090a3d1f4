package main

import (
	"fmt"
	"log/slog"

	"finbook/internal/domain/budget"
	"finbook/internal/domain/category"
	"finbook/internal/domain/transaction"
	"finbook/internal/domain/user"
	"finbook/internal/infrastructure/memory"
	"finbook/internal/infrastructure/postgres"
	httphandlers "finbook/internal/interfaces/http"
	"finbook/internal/shared/auth"
	"finbook/internal/shared/config"
	"finbook/internal/shared/logging"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	AuthHandler        *httphandlers.AuthHandler
	UserHandler        *httphandlers.UserHandler
	CategoryHandler    *httphandlers.CategoryHandler
	BudgetHandler      *httphandlers.BudgetHandler
	TransactionHandler *httphandlers.TransactionHandler

	JWT *auth.JWT
}

type repositories struct {
	users        user.Repository
	categories   category.Repository
	budgets      budget.Repository
	transactions transaction.Repository
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	log := logging.Component(logging.ComponentStorage)
	deps := &Dependencies{}

	var repos repositories
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		store := memory.NewStore()
		repos = repositories{
			users:        memory.NewUserRepository(store),
			categories:   memory.NewCategoryRepository(store),
			budgets:      memory.NewBudgetRepository(store),
			transactions: memory.NewTransactionRepository(store),
		}
		log.Warn("using in-memory storage; data is lost on restart")

	case config.BackendPostgres:
		if cfg.Database.AutoMigrate {
			if err := postgres.RunMigrations(cfg.Database.URL()); err != nil {
				return nil, err
			}
			log.Info("database migrations applied")
		}

		db, err := postgres.New(cfg.Database.ConnectionString())
		if err != nil {
			return nil, err
		}
		log.Info("connected to database", slog.String("host", cfg.Database.Host), slog.String("db", cfg.Database.DBName))

		deps.DB = db
		repos = repositories{
			users:        postgres.NewUserRepository(db),
			categories:   postgres.NewCategoryRepository(db),
			budgets:      postgres.NewBudgetRepository(db),
			transactions: postgres.NewTransactionRepository(db),
		}

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	categoryService := category.NewService(repos.categories)
	budgetService := budget.NewService(repos.budgets, categoryService)
	transactionService := transaction.NewService(repos.transactions, categoryService)

	deps.JWT = auth.NewJWTWithTTL(cfg.JWT.Secret, cfg.JWT.TTL)
	deps.AuthHandler = httphandlers.NewAuthHandler(repos.users, deps.JWT)
	deps.UserHandler = httphandlers.NewUserHandler(repos.users)
	deps.CategoryHandler = httphandlers.NewCategoryHandler(categoryService)
	deps.BudgetHandler = httphandlers.NewBudgetHandler(budgetService)
	deps.TransactionHandler = httphandlers.NewTransactionHandler(transactionService)

	return deps, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}

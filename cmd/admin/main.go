package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/civil"

	"finbook/internal/domain/budget"
	"finbook/internal/domain/category"
	"finbook/internal/domain/transaction"
	"finbook/internal/infrastructure/postgres"
	"finbook/internal/seed"
	"finbook/internal/shared/config"
	"finbook/internal/shared/logging"
)

const usage = `finbook admin CLI - database management commands

Usage:
  admin <command> [options]

Commands:
  migrate up|down   Apply all pending migrations, or roll back the latest one
  seed              Create the default categories (existing names are skipped)
  seed-demo         Create a demo user with budgets and random transactions

Examples:
  admin migrate up
  admin seed
  admin seed-demo --email=demo@example.com --password=demo-password --transactions=200
  admin seed-demo --email=demo@example.com --password=demo-password --seed=42
`

var log = logging.Component(logging.ComponentAdmin)

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage + "\n")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err == nil {
		slog.SetDefault(logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}))
		log = logging.Component(logging.ComponentAdmin)
	}

	command := os.Args[1]
	switch command {
	case "help", "-h", "--help":
		fmt.Print(usage + "\n")
		return
	case "migrate", "seed", "seed-demo":
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage + "\n")
		os.Exit(1)
	}

	if err != nil {
		fatal("failed to load config", err)
	}

	switch command {
	case "migrate":
		runMigrate(cfg, os.Args[2:])
	case "seed":
		if err := runSeed(cfg); err != nil {
			fatal("seeding categories failed", err)
		}
	case "seed-demo":
		if err := runSeedDemo(cfg, os.Args[2:]); err != nil {
			fatal("seeding demo data failed", err)
		}
	}
}

// fatal exits without running deferred calls. Commands holding a connection
// return their error to main instead.
func fatal(msg string, err error) {
	log.Error(msg, logging.FieldError, err)
	os.Exit(1)
}

func runMigrate(cfg *config.Config, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: admin migrate up|down")
		os.Exit(1)
	}

	switch args[0] {
	case "up":
		if err := postgres.RunMigrations(cfg.Database.URL()); err != nil {
			fatal("migration failed", err)
		}
		log.Info("migrations applied")
	case "down":
		if err := postgres.RollbackMigrations(cfg.Database.URL()); err != nil {
			fatal("rollback failed", err)
		}
		log.Info("latest migration rolled back")
	default:
		fmt.Printf("Unknown migrate direction: %s\n", args[0])
		os.Exit(1)
	}
}

func connect(cfg *config.Config) (*postgres.DB, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("connected to database")
	return db, nil
}

func runSeed(cfg *config.Config) error {
	db, err := connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := seed.Categories(ctx, postgres.NewCategoryRepository(db))
	if err != nil {
		return err
	}
	log.Info("categories seeded", slog.Int("created", n))
	return nil
}

func runSeedDemo(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("seed-demo", flag.ExitOnError)

	email := fs.String("email", "demo@example.com", "Email of the demo user")
	password := fs.String("password", "", "Password for the demo user (required when the user does not exist yet)")
	count := fs.Int("transactions", 100, "Number of random transactions to create")
	seedValue := fs.Int64("seed", 0, "Random seed; 0 picks a random one")
	timeoutStr := fs.String("timeout", "5m", "Timeout for the operation (e.g., 30s, 5m)")

	fs.Usage = func() {
		fmt.Println("Usage: admin seed-demo [options]")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *count < 0 {
		fmt.Println("Error: --transactions must not be negative")
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	db, err := connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	categoryRepo := postgres.NewCategoryRepository(db)
	categoryService := category.NewService(categoryRepo)

	if _, err := seed.Categories(ctx, categoryRepo); err != nil {
		return err
	}

	res, err := seed.Demo(ctx, seed.DemoDeps{
		Users:        postgres.NewUserRepository(db),
		Categories:   categoryRepo,
		Budgets:      budget.NewService(postgres.NewBudgetRepository(db), categoryService),
		Transactions: transaction.NewService(postgres.NewTransactionRepository(db), categoryService),
	}, seed.DemoConfig{
		Email:        *email,
		Password:     *password,
		Transactions: *count,
		Seed:         *seedValue,
		Today:        civil.DateOf(time.Now()),
	})
	if err != nil {
		return err
	}

	log.Info("demo data seeded",
		slog.Int64(logging.FieldUserID, res.User.ID),
		slog.Int("budgets", res.Budgets),
		slog.Int("transactions", res.Transactions),
	)
	return nil
}

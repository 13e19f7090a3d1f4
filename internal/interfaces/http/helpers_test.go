package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"finbook/internal/domain/budget"
	"finbook/internal/domain/category"
	"finbook/internal/domain/transaction"
	"finbook/internal/infrastructure/memory"
	"finbook/internal/shared/auth"
	"finbook/internal/shared/middleware"
)

const testSecret = "handler-test-secret-0123456789"

// testEnv wires every handler over a fresh memory store the same way the API
// binary does.
type testEnv struct {
	t       *testing.T
	handler http.Handler
	jwt     *auth.JWT
	store   *memory.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	categoryService := category.NewService(memory.NewCategoryRepository(store))
	budgetService := budget.NewService(memory.NewBudgetRepository(store), categoryService)
	transactionService := transaction.NewService(memory.NewTransactionRepository(store), categoryService)
	jwt := auth.NewJWT(testSecret)

	authHandler := NewAuthHandler(userRepo, jwt)
	userHandler := NewUserHandler(userRepo)
	categoryHandler := NewCategoryHandler(categoryService)
	budgetHandler := NewBudgetHandler(budgetService)
	transactionHandler := NewTransactionHandler(transactionService)

	protect := middleware.Auth(jwt)
	mux := http.NewServeMux()
	mux.HandleFunc("/health", HandleHealth)
	mux.HandleFunc("/api/v1/register", authHandler.HandleRegister)
	mux.HandleFunc("/api/v1/login", authHandler.HandleLogin)
	mux.Handle("/api/v1/logout", protect(http.HandlerFunc(authHandler.HandleLogout)))
	mux.Handle("/api/v1/me", protect(http.HandlerFunc(userHandler.HandleMe)))
	mux.Handle("/api/v1/categories", protect(http.HandlerFunc(categoryHandler.HandleCategories)))
	mux.Handle("/api/v1/categories/{id}", protect(http.HandlerFunc(categoryHandler.HandleCategoryByID)))
	mux.Handle("/api/v1/budgets", protect(http.HandlerFunc(budgetHandler.HandleBudgets)))
	mux.Handle("/api/v1/budgets/reports", protect(http.HandlerFunc(budgetHandler.HandleBudgetReport)))
	mux.Handle("/api/v1/budgets/{id}", protect(http.HandlerFunc(budgetHandler.HandleBudgetByID)))
	mux.Handle("/api/v1/transactions", protect(http.HandlerFunc(transactionHandler.HandleTransactions)))
	mux.Handle("/api/v1/transactions/{id}", protect(http.HandlerFunc(transactionHandler.HandleTransactionByID)))

	return &testEnv{t: t, handler: mux, jwt: jwt, store: store}
}

func (e *testEnv) token(userID int64) string {
	e.t.Helper()
	tok, err := e.jwt.Generate(userID, "user@example.com")
	if err != nil {
		e.t.Fatalf("generate token: %v", err)
	}
	return tok
}

// do sends body (marshalled unless it is already a string) as userID. A zero
// userID sends no credentials.
func (e *testEnv) do(method, path string, userID int64, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			e.t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("Authorization", "Bearer "+e.token(userID))
	}

	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

// mustCreate posts body and decodes the 201 response into out.
func (e *testEnv) mustCreate(path string, userID int64, body, out any) {
	e.t.Helper()
	rr := e.do(http.MethodPost, path, userID, body)
	if rr.Code != http.StatusCreated {
		e.t.Fatalf("POST %s: status %d, body %s", path, rr.Code, rr.Body.String())
	}
	if out != nil {
		decode(e.t, rr, out)
	}
}

func (e *testEnv) createCategory(name string, typ category.Type) int64 {
	e.t.Helper()
	var c category.Category
	e.mustCreate("/api/v1/categories", 1, map[string]any{"name": name, "type": typ}, &c)
	return c.ID
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
}

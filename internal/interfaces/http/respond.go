package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"finbook/internal/domain/budget"
	"finbook/internal/domain/category"
	"finbook/internal/domain/transaction"
	"finbook/internal/domain/user"
	"finbook/internal/shared/logging"
	"finbook/internal/shared/middleware"
	"finbook/internal/shared/validation"
)

const (
	msgInvalidData  = "The given data was invalid."
	msgInvalidBody  = "Invalid request body"
	msgServerError  = "Server Error"
	maxRequestBytes = 1 << 20
)

// MessageResponse is the body of every non-success JSON reply.
type MessageResponse struct {
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Component(logging.ComponentHTTP).Error("failed to encode response", logging.FieldError, err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

// decodeJSON reads one JSON document from the body into dst. It writes a 400
// and returns false on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(dst)
	if err != nil {
		logging.FromContext(r.Context()).Debug("invalid request body", logging.FieldError, err)
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// pathID parses the {id} wildcard. A non-numeric id can never name a record,
// so it is answered like a missing one.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		w.WriteHeader(http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// currentUser returns the id stored by middleware.Auth.
func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
		return 0, false
	}
	return id, true
}

func methodNotAllowed(w http.ResponseWriter) {
	writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// writeServiceError maps domain errors onto status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: msgInvalidData, Errors: verrs})

	case errors.Is(err, budget.ErrBudgetExists),
		errors.Is(err, budget.ErrBudgetCategoryTaken),
		errors.Is(err, category.ErrCategoryInUse):
		writeMessage(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, budget.ErrNoBudgets):
		writeMessage(w, http.StatusNotFound, err.Error())

	case errors.Is(err, budget.ErrBudgetNotFound),
		errors.Is(err, transaction.ErrTransactionNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, user.ErrUserNotFound):
		w.WriteHeader(http.StatusNotFound)

	default:
		logging.FromContext(r.Context()).Error("request failed",
			logging.FieldMethod, r.Method,
			logging.FieldPath, r.URL.Path,
			logging.FieldError, err,
		)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
	}
}

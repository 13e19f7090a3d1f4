package http

import (
	"net/http"

	"finbook/internal/domain/transaction"
)

type TransactionHandler struct {
	service *transaction.Service
}

func NewTransactionHandler(service *transaction.Service) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// HandleTransactions lists (filtered, sorted, paginated) or creates the
// current user's transactions.
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r, userID)
	case http.MethodPost:
		h.handleCreate(w, r, userID)
	default:
		methodNotAllowed(w)
	}
}

func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, id, userID)
	case http.MethodPut, http.MethodPatch:
		h.handleUpdate(w, r, id, userID)
	case http.MethodDelete:
		h.handleDelete(w, r, id, userID)
	default:
		methodNotAllowed(w)
	}
}

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request, userID int64) {
	q, err := transaction.ParseQuery(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	page, err := h.service.List(r.Context(), userID, q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *TransactionHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID int64) {
	var req transaction.CreateParams
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TransactionHandler) handleGet(w http.ResponseWriter, r *http.Request, id, userID int64) {
	t, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TransactionHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id, userID int64) {
	var req transaction.UpdateParams
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.service.Update(r.Context(), id, userID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TransactionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id, userID int64) {
	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

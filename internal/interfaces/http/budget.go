package http

import (
	"net/http"

	"finbook/internal/domain/budget"
	"finbook/internal/shared/pagination"
)

type BudgetHandler struct {
	service *budget.Service
}

func NewBudgetHandler(service *budget.Service) *BudgetHandler {
	return &BudgetHandler{service: service}
}

// HandleBudgets serves the current user's budget collection.
func (h *BudgetHandler) HandleBudgets(w http.ResponseWriter, r *http.Request) {
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

func (h *BudgetHandler) HandleBudgetByID(w http.ResponseWriter, r *http.Request) {
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

// HandleBudgetReport returns statistics over all of the user's budgets plus
// one page of them.
func (h *BudgetHandler) HandleBudgetReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	report, err := h.service.Report(r.Context(), userID, pageParams(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *BudgetHandler) handleList(w http.ResponseWriter, r *http.Request, userID int64) {
	page, err := h.service.List(r.Context(), userID, pageParams(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *BudgetHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID int64) {
	var req budget.CreateParams
	if !decodeJSON(w, r, &req) {
		return
	}

	b, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *BudgetHandler) handleGet(w http.ResponseWriter, r *http.Request, id, userID int64) {
	b, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BudgetHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id, userID int64) {
	var req budget.UpdateParams
	if !decodeJSON(w, r, &req) {
		return
	}

	b, err := h.service.Update(r.Context(), id, userID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BudgetHandler) handleDelete(w http.ResponseWriter, r *http.Request, id, userID int64) {
	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pageParams(r *http.Request) pagination.Params {
	q := r.URL.Query()
	return pagination.Parse(q.Get("page"), q.Get("per_page"))
}

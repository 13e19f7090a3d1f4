package http

import (
	"net/http"

	"finbook/internal/domain/user"
)

type UserHandler struct {
	userRepo user.Repository
}

func NewUserHandler(userRepo user.Repository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// HandleMe returns the authenticated user.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	u, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if u == nil {
		writeServiceError(w, r, user.ErrUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

package http

import (
	"errors"
	"net/http"
	"time"

	"finbook/internal/domain/user"
	"finbook/internal/shared/auth"
	"finbook/internal/shared/logging"
	"finbook/internal/shared/middleware"
	"finbook/internal/shared/validation"
)

type AuthHandler struct {
	userRepo user.Repository
	jwt      *auth.JWT
}

func NewAuthHandler(userRepo user.Repository, jwt *auth.JWT) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, jwt: jwt}
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// HandleRegister creates an account and signs the new user in.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req user.RegisterParams
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	existing, err := h.userRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if existing != nil {
		writeServiceError(w, r, emailTakenError())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	u, err := h.userRepo.Create(r.Context(), user.CreateUserParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, user.ErrEmailTaken) {
		writeServiceError(w, r, emailTakenError())
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("user registered", logging.FieldUserID, u.ID)
	h.respondWithToken(w, r, http.StatusCreated, u)
}

// HandleLogin exchanges email and password for a token.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req user.LoginParams
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	u, err := h.userRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if u == nil || auth.VerifyPassword(u.PasswordHash, req.Password) != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.respondWithToken(w, r, http.StatusOK, u)
}

// HandleLogout clears the auth cookie. Issued tokens stay valid until they expire.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeMessage(w, http.StatusOK, "Logged out")
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, u *user.User) {
	token, err := h.jwt.Generate(u.ID, u.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.jwt.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, status, AuthResponse{Token: token, User: u})
}

func emailTakenError() error {
	return validation.Errors{"email": "The email has already been taken."}
}

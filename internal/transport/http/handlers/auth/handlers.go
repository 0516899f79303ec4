package authhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taqyim/internal/domain/auth"
	"taqyim/internal/domain/settings"
	"taqyim/internal/domain/teacher"
	"taqyim/internal/platform/requestctx"
	"taqyim/internal/transport/http/api"
	"taqyim/internal/transport/http/middleware"
)

type Handler struct {
	DB       *pgxpool.Pool
	Teachers *teacher.Store
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(db *pgxpool.Pool, teachers *teacher.Store, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{DB: db, Teachers: teachers, Secret: secret, TokenTTL: tokenTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
	r.Post("/auth/logout", h.HandleLogout)
	r.Get("/me", h.HandleMe)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	var id, roleValue, hash string
	err := h.DB.QueryRow(r.Context(), `
    SELECT id, role, password_hash
    FROM users
    WHERE email = $1 AND status = $2
  `, payload.Email, settings.UserStatusActive).Scan(&id, &roleValue, &hash)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	}

	if err := auth.CheckPassword(hash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	}

	role, err := auth.ParseRole(roleValue)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: id, Email: payload.Email, Role: string(role)}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}

	if _, err := h.DB.Exec(r.Context(), "UPDATE users SET last_login = now() WHERE id = $1", id); err != nil {
		slog.Warn("update last_login failed", "userId", id, "err", err)
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  map[string]string{"id": id, "email": payload.Email, "role": string(role)},
	}, requestctx.GetRequestID(r.Context()))
}

// Tokens are stateless; logout exists so clients have a definite endpoint to
// call before discarding their credential.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"status": "logged_out"}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	response := map[string]any{"user": user}
	if user.Role == auth.RoleTeacher {
		if profile, err := h.Teachers.GetByUserID(r.Context(), user.UserID); err == nil {
			response["teacher"] = profile
		}
	}
	api.Success(w, response, requestctx.GetRequestID(r.Context()))
}

package settingshandler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taqyim/internal/domain/auth"
	"taqyim/internal/domain/settings"
	"taqyim/internal/transport/http/api"
	"taqyim/internal/transport/http/middleware"
	"taqyim/internal/transport/http/shared"
)

type Handler struct {
	Store *settings.Store
}

func NewHandler(store *settings.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleSupervisor))
		r.Get("/categories", h.handleListCategories)
		r.Put("/categories", h.handleUpdateCategories)
		r.Get("/users", h.handleListUsers)
		r.Post("/users/{userID}/status", h.handleSetUserStatus)
	})
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.ListCategories(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "settings_list_failed", "failed to list categories", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, categories, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateCategories(w http.ResponseWriter, r *http.Request) {
	var payload []settings.CategorySetting
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	for i, c := range payload {
		prefix := fmt.Sprintf("categories[%d]", i)
		v.Required(prefix+".categoryId", c.CategoryID, "categoryId is required")
		v.Required(prefix+".label", c.Label, "label is required")
		v.Enum(prefix+".section", string(c.Section), []string{"classroom", "student", "professional"}, "unknown section")
		v.IntRange(prefix+".weight", c.Weight, 1, 100, "weight must be between 1 and 100")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if err := h.Store.UpdateCategories(r.Context(), payload); err != nil {
		api.Fail(w, http.StatusInternalServerError, "settings_update_failed", "failed to update categories", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_list_failed", "failed to list users", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, users, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSetUserStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Enum("status", payload.Status, []string{settings.UserStatusActive, settings.UserStatusDisabled}, "status must be active or disabled")
	v.Required("status", payload.Status, "status is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if err := h.Store.SetUserStatus(r.Context(), userID, payload.Status); err != nil {
		if err == settings.ErrNotFound {
			api.Fail(w, http.StatusNotFound, "not_found", "user not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "user_update_failed", "failed to update user", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": userID, "status": payload.Status}, middleware.GetRequestID(r.Context()))
}

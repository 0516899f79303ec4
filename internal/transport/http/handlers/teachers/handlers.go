package teachershandler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taqyim/internal/domain/auth"
	"taqyim/internal/domain/notifications"
	"taqyim/internal/domain/teacher"
	"taqyim/internal/platform/email"
	"taqyim/internal/transport/http/api"
	"taqyim/internal/transport/http/middleware"
	"taqyim/internal/transport/http/shared"
)

type Handler struct {
	Service       *teacher.Service
	Notifications *notifications.Store
	Hub           *notifications.Hub
	Mailer        email.Mailer
	EmailFrom     string
}

func NewHandler(service *teacher.Service, store *notifications.Store, hub *notifications.Hub, mailer email.Mailer, emailFrom string) *Handler {
	return &Handler{Service: service, Notifications: store, Hub: hub, Mailer: mailer, EmailFrom: emailFrom}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/teachers", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleSupervisor, auth.RoleTeacher)).Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleSupervisor)).Post("/", h.handleCreate)
		r.Route("/{teacherID}", func(r chi.Router) {
			r.With(middleware.RequireRole(auth.RoleSupervisor, auth.RoleTeacher)).Get("/", h.handleGet)
			r.With(middleware.RequireRole(auth.RoleSupervisor)).Put("/", h.handleUpdate)
			r.With(middleware.RequireRole(auth.RoleSupervisor)).Delete("/", h.handleDelete)
		})
	})
}

type teacherPayload struct {
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	Department string `json:"department"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	JoinDate   string `json:"joinDate"`
	BirthDate  string `json:"birthDate"`
	Experience string `json:"experience"`
	Education  string `json:"education"`
	Bio        string `json:"bio"`
}

func (p teacherPayload) validate(w http.ResponseWriter, requestID string) (teacher.Teacher, bool) {
	v := shared.NewValidator()
	v.Required("name", p.Name, "name is required")
	v.Required("email", p.Email, "email is required")
	joinDate, _ := v.Date("joinDate", p.JoinDate)
	birthDate, _ := v.Date("birthDate", p.BirthDate)
	if v.Reject(w, requestID) {
		return teacher.Teacher{}, false
	}
	return teacher.Teacher{
		Name:       p.Name,
		Subject:    p.Subject,
		Department: p.Department,
		Email:      p.Email,
		Phone:      p.Phone,
		JoinDate:   joinDate,
		BirthDate:  birthDate,
		Experience: p.Experience,
		Education:  p.Education,
		Bio:        p.Bio,
	}, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	teachers, err := h.Service.Store.List(r.Context(), auth.ScopeFor(user))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "teacher_list_failed", "failed to list teachers", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, teachers, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	teacherID := chi.URLParam(r, "teacherID")

	profile, err := h.Service.Store.Get(r.Context(), auth.ScopeFor(user), teacherID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "teacher not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, profile, middleware.GetRequestID(r.Context()))
}

// handleCreate is the provisioning endpoint: one call creates the login and
// the profile and returns the one-time initial password.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload teacherPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	profile, ok := payload.validate(w, middleware.GetRequestID(r.Context()))
	if !ok {
		return
	}

	id, initialPassword, err := h.Service.Provision(r.Context(), profile)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "teacher_create_failed", "failed to create teacher", middleware.GetRequestID(r.Context()))
		return
	}

	h.Hub.Publish("teachers", "added", id, fmt.Sprintf("New teacher added: %s", profile.Name))
	if err := h.Notifications.CreateForSupervisors(r.Context(), "teachers", fmt.Sprintf("New teacher added: %s", profile.Name), ""); err != nil {
		slog.Warn("teacher notification failed", "teacherId", id, "err", err)
	}
	h.sendWelcome(r.Context(), profile, initialPassword)

	api.Created(w, map[string]string{
		"id":              id,
		"initialPassword": initialPassword,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "teacherID")

	var payload teacherPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	profile, ok := payload.validate(w, middleware.GetRequestID(r.Context()))
	if !ok {
		return
	}

	if err := h.Service.Store.Update(r.Context(), teacherID, profile); err != nil {
		if err == teacher.ErrNotFound {
			api.Fail(w, http.StatusNotFound, "not_found", "teacher not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "teacher_update_failed", "failed to update teacher", middleware.GetRequestID(r.Context()))
		return
	}

	h.Hub.Publish("teachers", "modified", teacherID, fmt.Sprintf("Teacher profile updated: %s", profile.Name))
	api.Success(w, map[string]string{"id": teacherID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "teacherID")

	profile, err := h.Service.Store.Get(r.Context(), auth.Scope{All: true}, teacherID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "teacher not found", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.Store.Delete(r.Context(), teacherID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "teacher_delete_failed", "failed to delete teacher", middleware.GetRequestID(r.Context()))
		return
	}

	h.Hub.Publish("teachers", "removed", teacherID, fmt.Sprintf("Teacher removed: %s", profile.Name))
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) sendWelcome(ctx context.Context, profile teacher.Teacher, initialPassword string) {
	body := fmt.Sprintf("An account has been created for you.\n\nEmail: %s\nTemporary password: %s\n\nPlease sign in and change your password.", profile.Email, initialPassword)
	if err := h.Mailer.Send(ctx, h.EmailFrom, profile.Email, "Your evaluation account", body); err != nil {
		slog.Warn("welcome email failed", "email", profile.Email, "err", err)
	}
}

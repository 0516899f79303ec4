package evaluationshandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taqyim/internal/domain/auth"
	"taqyim/internal/domain/evaluation"
	"taqyim/internal/domain/notifications"
	"taqyim/internal/domain/settings"
	"taqyim/internal/domain/teacher"
	"taqyim/internal/transport/http/api"
	"taqyim/internal/transport/http/middleware"
	"taqyim/internal/transport/http/shared"
)

type Handler struct {
	Store         *evaluation.Store
	Teachers      *teacher.Store
	Settings      *settings.Store
	Notifications *notifications.Store
	Hub           *notifications.Hub
}

func NewHandler(store *evaluation.Store, teachers *teacher.Store, settingsStore *settings.Store, notificationsStore *notifications.Store, hub *notifications.Hub) *Handler {
	return &Handler{Store: store, Teachers: teachers, Settings: settingsStore, Notifications: notificationsStore, Hub: hub}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/evaluations", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleSupervisor, auth.RoleTeacher)).Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleSupervisor)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleSupervisor, auth.RoleTeacher)).Get("/{evaluationID}", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleSupervisor)).Post("/{evaluationID}/submit", h.handleSubmit)
	})
}

type scorePayload struct {
	Score int    `json:"score"`
	Notes string `json:"notes"`
}

type createPayload struct {
	TeacherID  string                                    `json:"teacherId"`
	Draft      bool                                      `json:"draft"`
	FinalNotes string                                    `json:"finalNotes"`
	Sections   map[evaluation.Section]map[string]scorePayload `json:"sections"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	filter := evaluation.ListFilter{TeacherID: r.URL.Query().Get("teacher")}
	// drafts stay invisible to the evaluated teacher
	if user.Role == auth.RoleSupervisor && r.URL.Query().Get("includeDrafts") == "true" {
		filter.IncludeDrafts = true
	}

	evals, err := h.Store.List(r.Context(), auth.ScopeFor(user), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluation_list_failed", "failed to list evaluations", middleware.GetRequestID(r.Context()))
		return
	}

	type listEntry struct {
		evaluation.Evaluation
		AveragePercent int  `json:"averagePercent"`
		HasData        bool `json:"hasData"`
	}
	entries := make([]listEntry, 0, len(evals))
	for _, e := range evals {
		pct, ok := evaluation.AveragePercent(e)
		entries = append(entries, listEntry{Evaluation: e, AveragePercent: pct, HasData: ok})
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	evaluationID := chi.URLParam(r, "evaluationID")

	e, err := h.Store.Get(r.Context(), auth.ScopeFor(user), evaluationID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "evaluation not found", middleware.GetRequestID(r.Context()))
		return
	}

	pct, ok := evaluation.AveragePercent(e)
	api.Success(w, map[string]any{
		"evaluation":     e,
		"averagePercent": pct,
		"hasData":        ok,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("teacherId", payload.TeacherID, "teacherId is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	profile, err := h.Teachers.Get(r.Context(), auth.Scope{All: true}, payload.TeacherID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "teacher not found", middleware.GetRequestID(r.Context()))
		return
	}

	categories, err := h.Settings.ActiveCategories(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "settings_load_failed", "failed to load categories", middleware.GetRequestID(r.Context()))
		return
	}

	form, ok := buildForm(v, categories, payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) || !ok {
		return
	}

	status := evaluation.StatusSubmitted
	if payload.Draft {
		status = evaluation.StatusDraft
	}

	id, err := h.Store.Create(r.Context(), evaluation.Evaluation{
		TeacherID:    payload.TeacherID,
		SupervisorID: user.UserID,
		Status:       status,
		FinalNotes:   form.FinalNotes(),
		Sections:     form.Sections(),
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluation_create_failed", "failed to create evaluation", middleware.GetRequestID(r.Context()))
		return
	}

	if status == evaluation.StatusSubmitted {
		h.Hub.Publish("evaluations", "added", id, "New evaluation recorded")
		if err := h.Notifications.Create(r.Context(), payload.TeacherID, "evaluations", fmt.Sprintf("A new evaluation was recorded for %s", profile.Name), ""); err != nil {
			slog.Warn("evaluation notification failed", "evaluationId", id, "err", err)
		}
	}

	api.Created(w, map[string]string{"id": id, "status": status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	evaluationID := chi.URLParam(r, "evaluationID")

	e, err := h.Store.Get(r.Context(), auth.Scope{All: true}, evaluationID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "evaluation not found", middleware.GetRequestID(r.Context()))
		return
	}
	if e.Status != evaluation.StatusDraft {
		api.Fail(w, http.StatusConflict, "not_draft", "evaluation is not a draft", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.Submit(r.Context(), evaluationID); err != nil {
		if err == evaluation.ErrNotFound {
			api.Fail(w, http.StatusConflict, "not_draft", "evaluation is not a draft", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "evaluation_submit_failed", "failed to submit evaluation", middleware.GetRequestID(r.Context()))
		return
	}

	h.Hub.Publish("evaluations", "modified", evaluationID, "Evaluation submitted")
	if err := h.Notifications.Create(r.Context(), e.TeacherID, "evaluations", "A new evaluation was recorded for you", ""); err != nil {
		slog.Warn("evaluation notification failed", "evaluationId", evaluationID, "err", err)
	}

	api.Success(w, map[string]string{"id": evaluationID, "status": evaluation.StatusSubmitted}, middleware.GetRequestID(r.Context()))
}

// buildForm folds the submitted scores over a default-initialized form, so
// untouched categories keep the default score and nothing is partially
// filled. Unknown categories and out-of-range scores become field issues.
func buildForm(v *shared.Validator, categories []evaluation.Category, payload createPayload) (evaluation.Form, bool) {
	form := evaluation.NewForm(categories)
	for section, records := range payload.Sections {
		for categoryID, record := range records {
			field := fmt.Sprintf("sections.%s.%s", section, categoryID)
			if !evaluation.ValidScore(record.Score) {
				v.Add(field, "score must be between 1 and 5")
				continue
			}
			next, err := form.WithScore(section, categoryID, record.Score)
			if err != nil {
				v.Add(field, "unknown category")
				continue
			}
			form = next
			if record.Notes != "" {
				form, _ = form.WithNotes(section, categoryID, record.Notes)
			}
		}
	}
	form = form.WithFinalNotes(payload.FinalNotes)
	return form, !v.HasIssues()
}

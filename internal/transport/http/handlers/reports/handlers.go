package reportshandler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"taqyim/internal/domain/auth"
	"taqyim/internal/domain/reports"
	"taqyim/internal/domain/settings"
	"taqyim/internal/transport/http/api"
	"taqyim/internal/transport/http/middleware"
	"taqyim/internal/transport/http/shared"
)

type Handler struct {
	Service  *reports.Service
	Settings *settings.Store
}

func NewHandler(service *reports.Service, settingsStore *settings.Store) *Handler {
	return &Handler{Service: service, Settings: settingsStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleSupervisor))
		r.Get("/summary", h.handleSummary)
		r.Get("/summary/pdf", h.handleSummaryPDF)
		r.Get("/teachers", h.handleTeacherDetails)
	})
}

func parseFilter(r *http.Request, v *shared.Validator) reports.Filter {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = reports.PeriodAll
	}
	v.Enum("period", period, []string{
		reports.PeriodAll, reports.PeriodCurrent, reports.PeriodPrevious,
		reports.PeriodSemester1, reports.PeriodSemester2,
	}, "unknown reporting period")

	return reports.Filter{
		Department: r.URL.Query().Get("department"),
		Period:     period,
		Now:        time.Now(),
	}
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := parseFilter(r, v)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	categories, err := h.Settings.ActiveCategories(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "settings_load_failed", "failed to load categories", middleware.GetRequestID(r.Context()))
		return
	}

	summary, err := h.Service.Summary(r.Context(), auth.Scope{All: true}, filter, categories)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummaryPDF(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := parseFilter(r, v)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	categories, err := h.Settings.ActiveCategories(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "settings_load_failed", "failed to load categories", middleware.GetRequestID(r.Context()))
		return
	}

	summary, err := h.Service.Summary(r.Context(), auth.Scope{All: true}, filter, categories)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}

	data, err := reports.SummaryPDF(summary, time.Now().Format("2006-01-02 15:04"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_pdf_failed", "failed to render report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=evaluation-report-%s.pdf", time.Now().Format("2006-01-02")))
	_, _ = w.Write(data)
}

func (h *Handler) handleTeacherDetails(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := parseFilter(r, v)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	categories, err := h.Settings.ActiveCategories(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "settings_load_failed", "failed to load categories", middleware.GetRequestID(r.Context()))
		return
	}

	details, err := h.Service.TeacherDetails(r.Context(), auth.Scope{All: true}, filter, categories)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, details, middleware.GetRequestID(r.Context()))
}

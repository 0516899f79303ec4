package notificationshandler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"taqyim/internal/domain/auth"
	"taqyim/internal/domain/notifications"
	"taqyim/internal/transport/http/api"
	"taqyim/internal/transport/http/middleware"
)

const defaultListLimit = 50

type Handler struct {
	Store *notifications.Store
	Hub   *notifications.Hub
}

func NewHandler(store *notifications.Store, hub *notifications.Hub) *Handler {
	return &Handler{Store: store, Hub: hub}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleSupervisor, auth.RoleTeacher))
		r.Get("/", h.handleList)
		r.Post("/{notificationID}/read", h.handleMarkRead)
		r.Get("/stream", h.handleStream)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > defaultListLimit {
			api.Fail(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 50", middleware.GetRequestID(r.Context()))
			return
		}
		limit = parsed
	}

	items, err := h.Store.List(r.Context(), user.UserID, limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "notification_list_failed", "failed to list notifications", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	notificationID := chi.URLParam(r, "notificationID")

	if err := h.Store.MarkRead(r.Context(), user.UserID, notificationID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "notification_update_failed", "failed to mark notification read", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": notificationID, "status": "read"}, middleware.GetRequestID(r.Context()))
}

// handleStream pushes hub events to the client as server-sent events. Recent
// history is replayed on connect so a reconnecting client catches up, then
// the stream stays open until the client disconnects.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		api.Fail(w, http.StatusInternalServerError, "stream_unsupported", "streaming is not supported", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	events := h.Hub.Subscribe(r.Context())

	// The subscription opens before the history snapshot, so an event
	// published in between lands in both; streamEvents filters the live copy
	// by replayed ID.
	history := h.Hub.History()
	replayed := make(map[string]struct{}, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		writeEvent(w, history[i])
		replayed[history[i].ID] = struct{}{}
	}
	flusher.Flush()

	streamEvents(w, flusher, events, replayed)
}

func streamEvents(w io.Writer, flusher http.Flusher, events <-chan notifications.Event, replayed map[string]struct{}) {
	for event := range events {
		if _, ok := replayed[event.ID]; ok {
			delete(replayed, event.ID)
			continue
		}
		writeEvent(w, event)
		flusher.Flush()
	}
}

func writeEvent(w io.Writer, event notifications.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Kind, payload)
}

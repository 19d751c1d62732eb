package task

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/task/entity"
)

// Handler exposes the task endpoints. Every route is mounted behind the auth
// middleware, so the user id is always on the context.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// TitleRequest is the request body for create and title update.
type TitleRequest struct {
	Title string `json:"title"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	q := r.URL.Query()
	tasks, err := h.svc.List(r.Context(), userID, boolParam(q.Get("include_completed")), boolParam(q.Get("include_archived")))
	if err != nil {
		h.logger.Errorw("list tasks failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("could not list tasks"))
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	h.respondWithTask(w, func() (*entity.Task, error) {
		return h.svc.Get(r.Context(), r.PathValue("id"), userID)
	}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req TitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("invalid payload"))
		return
	}
	h.respondWithTask(w, func() (*entity.Task, error) {
		return h.svc.Create(r.Context(), userID, req.Title)
	}, http.StatusCreated)
}

func (h *Handler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req TitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("invalid payload"))
		return
	}
	h.respondWithTask(w, func() (*entity.Task, error) {
		return h.svc.UpdateTitle(r.Context(), r.PathValue("id"), userID, req.Title)
	}, http.StatusOK)
}

func (h *Handler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	h.respondWithTask(w, func() (*entity.Task, error) {
		return h.svc.MarkComplete(r.Context(), r.PathValue("id"), userID)
	}, http.StatusOK)
}

func (h *Handler) MarkIncomplete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	h.respondWithTask(w, func() (*entity.Task, error) {
		return h.svc.MarkIncomplete(r.Context(), r.PathValue("id"), userID)
	}, http.StatusOK)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	deleted, err := h.svc.Delete(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		h.logger.Errorw("delete task failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("could not delete task"))
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorBody("task not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondWithTask maps the service error taxonomy to HTTP statuses in one
// place: validation -> 422, not found (or not owned) -> 404.
func (h *Handler) respondWithTask(w http.ResponseWriter, op func() (*entity.Task, error), success int) {
	t, err := op()
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyTitle), errors.Is(err, ErrTitleTooLong):
			writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		case errors.Is(err, ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("task not found"))
		default:
			h.logger.Errorw("task operation failed", "err", err)
			writeJSON(w, http.StatusInternalServerError, errorBody("task operation failed"))
		}
		return
	}
	writeJSON(w, success, t)
}

func boolParam(v string) bool {
	return v == "true" || v == "1"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorBody(msg string) map[string]string {
	return map[string]string{"detail": msg}
}

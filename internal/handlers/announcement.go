package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hsmgmt/schoolsys-gobackend/internal/models"
	"github.com/hsmgmt/schoolsys-gobackend/internal/services"
)

// AnnouncementStore is the announcement CRUD surface the handler needs,
// implemented by services.AnnouncementService.
type AnnouncementStore interface {
	List(ctx context.Context, activeOnly bool) ([]models.Announcement, error)
	Get(ctx context.Context, id string) (*models.Announcement, error)
	Create(ctx context.Context, in services.CreateAnnouncementInput) (*models.Announcement, error)
	Update(ctx context.Context, id string, in services.UpdateAnnouncementInput) (*models.Announcement, error)
	Delete(ctx context.Context, id string) error
}

// AuthorizationChecker gates announcement writes. The current implementation
// is a teacher-existence lookup (services.TeacherService); a real credential
// system can replace it without touching the handlers.
type AuthorizationChecker interface {
	Exists(ctx context.Context, username string) (bool, error)
}

// AnnouncementHandler handles HTTP requests for announcements.
type AnnouncementHandler struct {
	store AnnouncementStore
	auth  AuthorizationChecker
	log   *zap.Logger
}

// NewAnnouncementHandler creates a new AnnouncementHandler.
func NewAnnouncementHandler(store AnnouncementStore, auth AuthorizationChecker, log *zap.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{store: store, auth: auth, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps the domain error taxonomy to status codes; anything
// outside it is a storage failure and becomes a generic 500.
func (h *AnnouncementHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidDateOrder):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Error("announcement request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// authorize checks the teacher_username query parameter against the teacher
// directory. Returns false after writing the response when the request may
// not proceed.
func (h *AnnouncementHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	username := r.URL.Query().Get("teacher_username")
	ok, err := h.auth.Exists(r.Context(), username)
	if err != nil {
		h.log.Error("teacher lookup failed", zap.String("teacher_username", username), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return false
	}
	if !ok {
		writeError(w, http.StatusUnauthorized, services.ErrUnauthorized.Error())
		return false
	}
	return true
}

// announcementParams are the writable announcement fields. Writes accept
// them in a JSON body or as query parameters; a query parameter that is
// present wins. nil means the field was not supplied at all.
type announcementParams struct {
	Message        *string `json:"message"`
	ExpirationDate *string `json:"expiration_date"`
	StartDate      *string `json:"start_date"`
}

func decodeAnnouncementParams(r *http.Request) (announcementParams, error) {
	var p announcementParams
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil && err != io.EOF {
			return p, err
		}
	}

	q := r.URL.Query()
	if q.Has("message") {
		v := q.Get("message")
		p.Message = &v
	}
	if q.Has("expiration_date") {
		v := q.Get("expiration_date")
		p.ExpirationDate = &v
	}
	if q.Has("start_date") {
		v := q.Get("start_date")
		p.StartDate = &v
	}

	return p, nil
}

// GetAnnouncements handles GET /announcements?active_only=bool
func (h *AnnouncementHandler) GetAnnouncements(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if raw := r.URL.Query().Get("active_only"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid active_only parameter")
			return
		}
		activeOnly = parsed
	}

	announcements, err := h.store.List(r.Context(), activeOnly)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, announcements)
}

// GetAnnouncement handles GET /announcements/{id}
func (h *AnnouncementHandler) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcement, err := h.store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, announcement)
}

// CreateAnnouncement handles POST /announcements
func (h *AnnouncementHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	p, err := decodeAnnouncementParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if p.Message == nil {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	in := services.CreateAnnouncementInput{
		Message:   *p.Message,
		CreatedBy: r.URL.Query().Get("teacher_username"),
	}
	if p.ExpirationDate != nil {
		in.ExpirationDate = *p.ExpirationDate
	}
	if p.StartDate != nil {
		in.StartDate = *p.StartDate
	}

	announcement, err := h.store.Create(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, announcement)
}

// UpdateAnnouncement handles PUT /announcements/{id}
func (h *AnnouncementHandler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	p, err := decodeAnnouncementParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := services.UpdateAnnouncementInput{
		Message:        p.Message,
		ExpirationDate: p.ExpirationDate,
		StartDate:      p.StartDate,
	}

	announcement, err := h.store.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, announcement)
}

// DeleteAnnouncement handles DELETE /announcements/{id}
func (h *AnnouncementHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	if err := h.store.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "announcement deleted successfully"})
}

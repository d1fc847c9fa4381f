package announcements

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/play2learn/backend/internal/middleware"
	"github.com/play2learn/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}
	schoolID := middleware.SchoolID(r)
	if schoolID == nil {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Announcements require a school account"})
		return
	}

	var req models.CreateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Body) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Title and body are required"})
		return
	}

	announcement, err := h.store.Create(*schoolID, userID, req)
	if err != nil {
		log.Printf("WARN: failed to create announcement: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create announcement"})
		return
	}

	writeJSON(w, http.StatusCreated, announcement)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	schoolID := middleware.SchoolID(r)
	if schoolID == nil {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Announcements require a school account"})
		return
	}

	out, err := h.store.ListForSchool(*schoolID)
	if err != nil {
		log.Printf("WARN: failed to list announcements: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list announcements"})
		return
	}
	if out == nil {
		out = []models.Announcement{}
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	schoolID := middleware.SchoolID(r)
	if schoolID == nil {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Announcements require a school account"})
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid announcement id"})
		return
	}

	var req models.UpdateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	announcement, err := h.store.Update(*schoolID, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Announcement not found"})
			return
		}
		log.Printf("WARN: failed to update announcement %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update announcement"})
		return
	}

	writeJSON(w, http.StatusOK, announcement)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	schoolID := middleware.SchoolID(r)
	if schoolID == nil {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Announcements require a school account"})
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid announcement id"})
		return
	}

	if err := h.store.Delete(*schoolID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Announcement not found"})
			return
		}
		log.Printf("WARN: failed to delete announcement %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to delete announcement"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

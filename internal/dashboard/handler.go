package dashboard

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/play2learn/backend/internal/middleware"
	"github.com/play2learn/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) LinkChild(w http.ResponseWriter, r *http.Request) {
	parentID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req models.LinkChildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	req.ChildEmail = strings.TrimSpace(strings.ToLower(req.ChildEmail))
	if req.ChildEmail == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "child_email is required"})
		return
	}

	if err := h.store.LinkChild(parentID, req.ChildEmail); err != nil {
		switch {
		case errors.Is(err, ErrChildNotFound):
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No student account with that email"})
		case errors.Is(err, ErrAlreadyLinked):
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Child already linked"})
		default:
			log.Printf("WARN: failed to link child for parent %d: %v", parentID, err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to link child"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (h *Handler) ParentDashboard(w http.ResponseWriter, r *http.Request) {
	parentID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	children, err := h.store.ChildSummaries(parentID)
	if err != nil {
		log.Printf("WARN: failed to load parent dashboard for user %d: %v", parentID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load dashboard"})
		return
	}
	if children == nil {
		children = []models.ChildSummary{}
	}

	writeJSON(w, http.StatusOK, models.ParentDashboardResponse{Children: children})
}

func (h *Handler) SchoolDashboard(w http.ResponseWriter, r *http.Request) {
	schoolID := middleware.SchoolID(r)
	if schoolID == nil {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "School dashboard requires a school account"})
		return
	}

	resp, err := h.store.SchoolAggregates(*schoolID)
	if err != nil {
		log.Printf("WARN: failed to load school dashboard for school %d: %v", *schoolID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load dashboard"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

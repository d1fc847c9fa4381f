package testimonials

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

// Submit accepts a parent testimonial. It is scored on arrival and parked
// as pending until a platform admin moderates it.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req models.CreateTestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Content is required"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Rating must be between 1 and 5"})
		return
	}

	score, label := ScoreSentiment(req.Content, req.Rating)

	testimonial, err := h.store.Create(userID, middleware.SchoolID(r), req.Content, req.Rating, score, label)
	if err != nil {
		log.Printf("WARN: failed to create testimonial: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit testimonial"})
		return
	}

	writeJSON(w, http.StatusCreated, testimonial)
}

// ListApproved is the public marketing feed.
func (h *Handler) ListApproved(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListByStatus(models.TestimonialApproved, 50)
	if err != nil {
		log.Printf("WARN: failed to list approved testimonials: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list testimonials"})
		return
	}
	if out == nil {
		out = []models.Testimonial{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListByStatus(models.TestimonialPending, 100)
	if err != nil {
		log.Printf("WARN: failed to list pending testimonials: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list testimonials"})
		return
	}
	if out == nil {
		out = []models.Testimonial{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Moderate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid testimonial id"})
		return
	}

	var req models.ModerateTestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Status != models.TestimonialApproved && req.Status != models.TestimonialRejected {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "status must be 'approved' or 'rejected'"})
		return
	}

	testimonial, err := h.store.SetStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Testimonial not found"})
			return
		}
		log.Printf("WARN: failed to moderate testimonial %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to moderate testimonial"})
		return
	}

	writeJSON(w, http.StatusOK, testimonial)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

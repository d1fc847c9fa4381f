package quiz

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/play2learn/backend/internal/middleware"
	"github.com/play2learn/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req models.StartQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.QuizType != "" && req.QuizType != models.QuizPlacement && req.QuizType != models.QuizRegular {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "quiz_type must be 'placement' or 'regular'"})
		return
	}

	resp, err := h.service.StartQuiz(r.Context(), userID, middleware.SchoolID(r), req)
	if err != nil {
		writeServiceError(w, err, "Failed to start quiz")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.AttemptID <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "attempt_id is required"})
		return
	}

	resp, err := h.service.SubmitQuiz(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, err, "Failed to submit quiz")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	query := r.URL.Query()
	page := intQueryParam(query, "page", 1)
	pageSize := intQueryParam(query, "page_size", 20)

	resp, err := h.service.ListAttempts(userID, page, pageSize)
	if err != nil {
		log.Printf("WARN: failed to list attempts for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list attempts"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	attemptID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid attempt id"})
		return
	}

	attempt, err := h.service.GetAttempt(userID, attemptID)
	if err != nil {
		writeServiceError(w, err, "Failed to get attempt")
		return
	}

	writeJSON(w, http.StatusOK, attempt)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	profile, err := h.service.GetProfile(userID)
	if err != nil {
		log.Printf("WARN: failed to get profile for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get profile"})
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// ── Content Administration ──────────────────────────────

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	question, err := h.service.CreateQuestion(middleware.SchoolID(r), req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, question)
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := intQueryParam(query, "page", 1)
	pageSize := intQueryParam(query, "page_size", 20)

	resp, err := h.service.ListQuestions(middleware.SchoolID(r), page, pageSize)
	if err != nil {
		log.Printf("WARN: failed to list questions: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list questions"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SetQuestionActive(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question id"})
		return
	}

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "is_active is required"})
		return
	}

	if err := h.service.SetQuestionActive(questionID, *req.IsActive); err != nil {
		writeServiceError(w, err, "Failed to update question")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
	case errors.Is(err, ErrPlacementExists):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Placement quiz already taken"})
	case errors.Is(err, ErrAlreadyGraded):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Attempt already graded"})
	case errors.Is(err, ErrAttemptLimit):
		writeJSON(w, http.StatusTooManyRequests, models.ErrorResponse{Error: "Daily attempt limit reached"})
	case errors.Is(err, ErrInsufficientData):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Not enough questions available"})
	default:
		log.Printf("WARN: %s: %v", fallback, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: fallback})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}

package rewards

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/play2learn/backend/internal/middleware"
	"github.com/play2learn/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.service.Balance(userID)
	if err != nil {
		log.Printf("WARN: failed to get balance for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get balance"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Settings()
	if err != nil {
		log.Printf("WARN: failed to get reward settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get settings"})
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRewardSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.PointsPerCorrect != nil && *req.PointsPerCorrect < 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "points_per_correct must be non-negative"})
		return
	}
	if req.PerfectBonus != nil && *req.PerfectBonus < 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "perfect_bonus must be non-negative"})
		return
	}
	if req.DailyAttemptLimit != nil && *req.DailyAttemptLimit < 1 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "daily_attempt_limit must be at least 1"})
		return
	}

	settings, err := h.service.UpdateSettings(req)
	if err != nil {
		log.Printf("WARN: failed to update reward settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update settings"})
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

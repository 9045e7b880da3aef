package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"lesson-deck/internal/models"
	"lesson-deck/internal/scoring"
	"lesson-deck/internal/services"
)

// ActivityHandler handles HTTP requests for activity scoring
type ActivityHandler struct {
	attempts *services.AttemptService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(attempts *services.AttemptService) *ActivityHandler {
	return &ActivityHandler{
		attempts: attempts,
	}
}

// CheckActivityRequest represents a request to score an activity
type CheckActivityRequest struct {
	DeckKey  string           `json:"deckKey"`
	SlideID  string           `json:"slideId"`
	Activity scoring.Activity `json:"activity"`
}

// CheckActivityResponse carries the tally and the marked activity state
type CheckActivityResponse struct {
	Result   scoring.Result   `json:"result"`
	Activity scoring.Activity `json:"activity"`
}

// CheckActivity scores a submitted activity state and records the attempt
// POST /api/activity/check
func (ah *ActivityHandler) CheckActivity(w http.ResponseWriter, r *http.Request) {
	var req CheckActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Activity.Type == "" {
		http.Error(w, "activity.type is required", http.StatusBadRequest)
		return
	}

	result := scoring.Check(&req.Activity)

	// Attempt history is best-effort; a storage failure never blocks scoring.
	if req.DeckKey != "" && req.SlideID != "" {
		if _, err := ah.attempts.RecordAttempt(req.DeckKey, req.SlideID, req.Activity.Type, result); err != nil {
			log.Printf("Failed to record attempt: %v", err)
		}
	}

	writeJSON(w, CheckActivityResponse{Result: result, Activity: req.Activity})
}

// ResetActivityRequest represents a request to clear an activity
type ResetActivityRequest struct {
	Activity scoring.Activity `json:"activity"`
}

// ResetActivity returns the activity restored to its freshly created state
// POST /api/activity/reset
func (ah *ActivityHandler) ResetActivity(w http.ResponseWriter, r *http.Request) {
	var req ResetActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	scoring.Reset(&req.Activity)
	writeJSON(w, req.Activity)
}

// GetAttempts returns every recorded attempt for a deck
// GET /api/deck/{key}/attempts
func (ah *ActivityHandler) GetAttempts(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deckKey := vars["key"]

	attempts, err := ah.attempts.GetAttemptsByDeck(deckKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Always return an array, even if empty
	if attempts == nil {
		attempts = []*models.ActivityAttempt{}
	}
	writeJSON(w, attempts)
}

// GetSummary returns per-activity aggregates for a deck
// GET /api/deck/{key}/summary
func (ah *ActivityHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deckKey := vars["key"]

	summaries, err := ah.attempts.GetDeckSummary(deckKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if summaries == nil {
		summaries = []*models.ActivitySummary{}
	}
	writeJSON(w, summaries)
}

// DeleteAttempts clears a deck's attempt history
// DELETE /api/deck/{key}/attempts
func (ah *ActivityHandler) DeleteAttempts(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deckKey := vars["key"]

	if err := ah.attempts.DeleteAttempts(deckKey); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

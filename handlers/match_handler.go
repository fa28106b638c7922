package handlers

import (
	"fmt"
	"net/http"

	"github.com/scorebet/prediction-league/models"
	"github.com/scorebet/prediction-league/repositories"
	"github.com/scorebet/prediction-league/services"
)

type MatchHandler struct {
	matchService   services.MatchService
	scoringService services.ScoringService
}

func NewMatchHandler(matchService services.MatchService, scoringService services.ScoringService) *MatchHandler {
	return &MatchHandler{
		matchService:   matchService,
		scoringService: scoringService,
	}
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.MatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List returns matches filtered by optional ?status=, ?phase= and ?group=
// query parameters.
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter repositories.MatchFilter

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := models.MatchStatus(statusStr)
		switch status {
		case models.MatchStatusUpcoming, models.MatchStatusLive, models.MatchStatusFinished:
			filter.Status = &status
		default:
			badRequestResponse(w, r, fmt.Errorf("invalid status filter %q", statusStr))
			return
		}
	}

	if phaseStr := r.URL.Query().Get("phase"); phaseStr != "" {
		phase := models.MatchPhase(phaseStr)
		switch phase {
		case models.PhaseGroup, models.PhaseRound16, models.PhaseQuarter, models.PhaseSemi, models.PhaseFinal:
			filter.Phase = &phase
		default:
			badRequestResponse(w, r, fmt.Errorf("invalid phase filter %q", phaseStr))
			return
		}
	}

	if group := r.URL.Query().Get("group"); group != "" {
		filter.GroupLabel = &group
	}

	matches, err := h.matchService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.MatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.Update(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.Delete(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetResult enters the final score for a match. Prediction points and, for
// group matches, group standings are brought up to date before responding.
func (h *MatchHandler) SetResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.MatchResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.SetResult(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Recalculate runs a full scoring pass over every stored prediction.
func (h *MatchHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	summary, err := h.scoringService.RecalculateAll(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"recalculation": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/scorebet/prediction-league/middleware"
	"github.com/scorebet/prediction-league/models"
	"github.com/scorebet/prediction-league/services"
)

type PredictionHandler struct {
	predictionService services.PredictionService
}

func NewPredictionHandler(predictionService services.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictionService: predictionService}
}

// Submit creates or replaces the caller's prediction for a match.
func (h *PredictionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.PredictionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	prediction, err := h.predictionService.Submit(r.Context(), currentUserID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"prediction": prediction}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMine returns all predictions of the authenticated caller.
func (h *PredictionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	predictions, err := h.predictionService.ListByUser(r.Context(), currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"predictions": predictions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListByMatch returns every prediction placed on one match.
func (h *PredictionHandler) ListByMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	predictions, err := h.predictionService.ListByMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"predictions": predictions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PotentialPoints answers "how much could this prediction be worth" from the
// ?type= and ?man_of_the_match= query parameters, before anything is stored.
func (h *PredictionHandler) PotentialPoints(w http.ResponseWriter, r *http.Request) {
	typeStr := r.URL.Query().Get("type")
	if typeStr == "" {
		badRequestResponse(w, r, errors.New("type query parameter is required"))
		return
	}

	hasManOfTheMatch := false
	if motmStr := r.URL.Query().Get("man_of_the_match"); motmStr != "" {
		parsed, err := strconv.ParseBool(motmStr)
		if err != nil {
			badRequestResponse(w, r, errors.New("man_of_the_match must be a boolean"))
			return
		}
		hasManOfTheMatch = parsed
	}

	points, err := h.predictionService.PotentialPoints(models.PredictionType(typeStr), hasManOfTheMatch)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"potential_points": points}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scorebet/prediction-league/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

func (h *StandingsHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")

	standings, err := h.standingsService.GetGroupStandings(r.Context(), group)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RebuildGroup re-derives a group's table from its finished matches,
// replacing whatever is stored.
func (h *StandingsHandler) RebuildGroup(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")

	standings, err := h.standingsService.RebuildGroupStandings(r.Context(), group)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Override applies an admin correction to a single standings row.
func (h *StandingsHandler) Override(w http.ResponseWriter, r *http.Request) {
	var input services.StandingOverrideInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	row, err := h.standingsService.OverrideStanding(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standing": row}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

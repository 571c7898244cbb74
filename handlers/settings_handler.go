package handlers

import (
	"net/http"

	"github.com/Adilkhan05/cup-system/models"
	"github.com/Adilkhan05/cup-system/services"
)

type SettingsHandler struct {
	settingsService services.SettingsService
}

func NewSettingsHandler(settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"settings": settings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SettingsHandler) SetPhaseHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Phase models.MatchPhase `json:"phase"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.settingsService.SetPhase(r.Context(), input.Phase); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SettingsHandler) SetQualifiedTeamsHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		TeamIDs []int `json:"team_ids"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.settingsService.SetQualifiedTeams(r.Context(), input.TeamIDs); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SettingsHandler) ResetGroupStageHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.settingsService.ResetGroupStage(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SettingsHandler) ResetKnockoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.settingsService.ResetKnockout(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SettingsHandler) ResetAllHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.settingsService.ResetAll(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

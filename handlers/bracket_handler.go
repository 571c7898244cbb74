package handlers

import (
	"net/http"

	"github.com/Adilkhan05/cup-system/models"
	"github.com/Adilkhan05/cup-system/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bracketService services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bracketService}
}

func (h *BracketHandler) GetRankingsHandler(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.bracketService.GetRankings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rankings": rankings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) GetBracketHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.bracketService.GetBracketView(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) GenerateBracketHandler(w http.ResponseWriter, r *http.Request) {
	pairings, err := h.bracketService.GenerateBracket(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bracket": pairings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) SaveSlotsHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Slots []models.BracketSlot `json:"slots"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	created, err := h.bracketService.SaveSlots(r.Context(), input.Slots)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if created == nil {
		created = []int{}
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"auto_created_matches": created}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

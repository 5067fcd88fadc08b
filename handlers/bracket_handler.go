package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/metrix-gg/metrix-server/brackets"
	"github.com/metrix-gg/metrix-server/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bs services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bs}
}

// StartSessionHandler handles POST /tournaments/{tournamentID}/bracket/sessions.
// It loads the registered participants, generates a fresh single-elimination
// bracket and opens an in-memory editing session over it.
func (h *BracketHandler) StartSessionHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getUUIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	session, err := h.bracketService.StartSession(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetSessionHandler handles GET /bracket/sessions/{sessionID}
func (h *BracketHandler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	session, err := h.bracketService.GetSession(sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateMatchHandler handles PATCH /bracket/sessions/{sessionID}/matches/{matchIndex}.
// Absent fields keep their current value.
func (h *BracketHandler) UpdateMatchHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	index, err := getIntFromURL(r, "matchIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var upd brackets.MatchUpdate
	if err := readJSON(w, r, &upd); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	session, err := h.bracketService.UpdateMatch(sessionID, index, upd)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SwapPlayerHandler handles PUT /bracket/sessions/{sessionID}/matches/{matchIndex}/players.
// A null player_id vacates the slot.
func (h *BracketHandler) SwapPlayerHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	index, err := getIntFromURL(r, "matchIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Slot     string     `json:"slot"`
		PlayerID *uuid.UUID `json:"player_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	slot, err := brackets.ParseSlot(input.Slot)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	session, err := h.bracketService.SwapPlayer(sessionID, index, slot, input.PlayerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMatchHandler handles DELETE /bracket/sessions/{sessionID}/matches/{matchIndex}.
// Remaining match numbers are left untouched.
func (h *BracketHandler) DeleteMatchHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	index, err := getIntFromURL(r, "matchIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	session, err := h.bracketService.DeleteMatch(sessionID, index)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AvailableParticipantsHandler handles
// GET /bracket/sessions/{sessionID}/matches/{matchIndex}/available?slot=player1.
// It returns the entrants assignable to that slot: everyone not already
// placed somewhere, plus the slot's current occupant.
func (h *BracketHandler) AvailableParticipantsHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	index, err := getIntFromURL(r, "matchIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	slotParam := r.URL.Query().Get("slot")
	if slotParam == "" {
		badRequestResponse(w, r, errors.New("slot query parameter is required"))
		return
	}
	slot, err := brackets.ParseSlot(slotParam)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participants, err := h.bracketService.AvailableParticipants(sessionID, index, slot)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"participants": participants}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ValidateHandler handles POST /bracket/sessions/{sessionID}/validate.
// Validation is advisory: violations are reported, never enforced.
func (h *BracketHandler) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	violations, err := h.bracketService.Validate(sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if violations == nil {
		violations = []brackets.Violation{}
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"violations": violations}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SaveHandler handles POST /bracket/sessions/{sessionID}/save.
// The persisted bracket replaces whatever the tournament had before; on
// failure the session survives so the admin can retry.
func (h *BracketHandler) SaveHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.bracketService.Save(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DiscardSessionHandler handles DELETE /bracket/sessions/{sessionID}
func (h *BracketHandler) DiscardSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.bracketService.DiscardSession(sessionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/metrix-gg/metrix-server/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(us services.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// ListSpectatorsHandler handles GET /users/spectators. The bracket editor
// uses it to populate the spectator dropdown of a match.
func (h *UserHandler) ListSpectatorsHandler(w http.ResponseWriter, r *http.Request) {
	spectators, err := h.userService.ListActiveSpectators(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	type spectatorView struct {
		ID       string `json:"id"`
		Nickname string `json:"nickname"`
	}
	views := make([]spectatorView, 0, len(spectators))
	for _, s := range spectators {
		views = append(views, spectatorView{ID: s.ID.String(), Nickname: s.Nickname})
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"spectators": views}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
